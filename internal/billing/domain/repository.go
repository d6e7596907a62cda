package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"gorm.io/gorm"
)

type Repository interface {
	InsertInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindInvoiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock bool) (*Invoice, error)
	ListInvoices(ctx context.Context, db *gorm.DB) ([]Invoice, error)
	ListInvoicesBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, code statedomain.Code, at time.Time) error
	UpdateInvoiceTotals(ctx context.Context, db *gorm.DB, id snowflake.ID, subtotal, total decimal.Decimal, at time.Time) error
	DeleteInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	// MaxInvoiceSeq reads the highest assigned sequence inside the
	// caller's transaction.
	MaxInvoiceSeq(ctx context.Context, db *gorm.DB) (int64, error)

	InsertProforma(ctx context.Context, db *gorm.DB, proforma *Proforma) error
	FindProformaByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock bool) (*Proforma, error)
	ListProformas(ctx context.Context, db *gorm.DB) ([]Proforma, error)
	UpdateProformaStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, code statedomain.Code, at time.Time) error
	UpdateProformaTotals(ctx context.Context, db *gorm.DB, id snowflake.ID, subtotal, total decimal.Decimal, at time.Time) error
	SetProformaConverted(ctx context.Context, db *gorm.DB, id, invoiceID snowflake.ID, at time.Time) error
	DeleteProforma(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	MaxProformaSeq(ctx context.Context, db *gorm.DB) (int64, error)
}
