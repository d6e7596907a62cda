package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// DocumentRef names which document column an assignment touches.
type DocumentRef string

const (
	RefFactura  DocumentRef = "factura_id"
	RefProforma DocumentRef = "proforma_id"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, repair *Repair) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Repair, error)
	// FindByIDsForUpdate locks the rows for the surrounding transaction.
	FindByIDsForUpdate(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Repair, error)
	List(ctx context.Context, db *gorm.DB) ([]Repair, error)
	ListByDocument(ctx context.Context, db *gorm.DB, ref DocumentRef, docID snowflake.ID) ([]Repair, error)
	Update(ctx context.Context, db *gorm.DB, repair *Repair) error
	ReplaceWorkItems(ctx context.Context, db *gorm.DB, repairID snowflake.ID, rows []RepairWorkItem) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	// SetDocument points the given column at docID (nil detaches) for all
	// ids. Callers run it inside a transaction.
	SetDocument(ctx context.Context, db *gorm.DB, ref DocumentRef, docID *snowflake.ID, ids []snowflake.ID) error
	// StampOrderNumber bulk-writes num_pedido, independent of assignment.
	StampOrderNumber(ctx context.Context, db *gorm.DB, ids []snowflake.ID, numPedido string) error
}
