package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/location/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, location *domain.Location) error {
	return db.WithContext(ctx).Create(location).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Location, error) {
	var location domain.Location
	err := db.WithContext(ctx).First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Location, error) {
	var locations []domain.Location
	err := db.WithContext(ctx).Order("calle asc, numero asc, id asc").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, location *domain.Location) error {
	return db.WithContext(ctx).Model(&domain.Location{}).
		Where("id = ?", location.ID).
		Updates(map[string]any{
			"calle":      location.Calle,
			"numero":     location.Numero,
			"ciudad":     location.Ciudad,
			"escalera":   location.Escalera,
			"ascensor":   location.Ascensor,
			"updated_at": location.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Location{}, "id = ?", id).Error
}
