package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/state/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, kind domain.Kind) ([]domain.State, error) {
	var states []domain.State
	stmt := db.WithContext(ctx).Model(&domain.State{})
	if kind != "" {
		stmt = stmt.Where("kind = ?", kind)
	}
	if err := stmt.Order("kind asc, id asc").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.State, error) {
	var state domain.State
	err := db.WithContext(ctx).First(&state, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, state *domain.State) error {
	return db.WithContext(ctx).Model(&domain.State{}).
		Where("id = ?", state.ID).
		Updates(map[string]any{
			"nombre":      state.Nombre,
			"descripcion": state.Descripcion,
			"updated_at":  state.UpdatedAt,
		}).Error
}
