package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, kind Kind) ([]State, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*State, error)
	Update(ctx context.Context, db *gorm.DB, state *State) error
}
