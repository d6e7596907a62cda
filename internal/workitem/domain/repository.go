package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *WorkItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*WorkItem, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]WorkItem, error)
	List(ctx context.Context, db *gorm.DB) ([]WorkItem, error)
	Update(ctx context.Context, db *gorm.DB, item *WorkItem) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	UpsertClientPrice(ctx context.Context, db *gorm.DB, price *ClientPrice) error
	ListClientPrices(ctx context.Context, db *gorm.DB, workItemID snowflake.ID) ([]ClientPrice, error)
	FindClientPrices(ctx context.Context, db *gorm.DB, clientID snowflake.ID, workItemIDs []snowflake.ID) ([]ClientPrice, error)
	DeleteClientPrice(ctx context.Context, db *gorm.DB, workItemID, clientID snowflake.ID) error
}
