package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/workitem/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.WorkItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.WorkItem, error) {
	var item domain.WorkItem
	err := db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.WorkItem
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.WorkItem, error) {
	var items []domain.WorkItem
	err := db.WithContext(ctx).Order("nombre asc, id asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *domain.WorkItem) error {
	return db.WithContext(ctx).Model(&domain.WorkItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"nombre":     item.Nombre,
			"precio":     item.Precio,
			"especial":   item.Especial,
			"updated_at": item.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.WorkItem{}, "id = ?", id).Error
}

func (r *repo) UpsertClientPrice(ctx context.Context, db *gorm.DB, price *domain.ClientPrice) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "work_item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"precio":     price.Precio,
			"updated_at": price.UpdatedAt,
		}),
	}).Create(price).Error
}

func (r *repo) ListClientPrices(ctx context.Context, db *gorm.DB, workItemID snowflake.ID) ([]domain.ClientPrice, error) {
	var prices []domain.ClientPrice
	err := db.WithContext(ctx).
		Where("work_item_id = ?", workItemID).
		Order("client_id asc").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repo) FindClientPrices(ctx context.Context, db *gorm.DB, clientID snowflake.ID, workItemIDs []snowflake.ID) ([]domain.ClientPrice, error) {
	if len(workItemIDs) == 0 {
		return nil, nil
	}
	var prices []domain.ClientPrice
	err := db.WithContext(ctx).
		Where("client_id = ? AND work_item_id IN ?", clientID, workItemIDs).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repo) DeleteClientPrice(ctx context.Context, db *gorm.DB, workItemID, clientID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("work_item_id = ? AND client_id = ?", workItemID, clientID).
		Delete(&domain.ClientPrice{}).Error
}
