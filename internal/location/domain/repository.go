package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, location *Location) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Location, error)
	List(ctx context.Context, db *gorm.DB) ([]Location, error)
	Update(ctx context.Context, db *gorm.DB, location *Location) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
