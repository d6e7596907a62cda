package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/repair/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, repair *domain.Repair) error {
	return db.WithContext(ctx).Create(repair).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Repair, error) {
	var repair domain.Repair
	err := db.WithContext(ctx).First(&repair, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachWorkItems(ctx, db, []*domain.Repair{&repair}); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *repo) FindByIDsForUpdate(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Repair, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var repairs []domain.Repair
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&repairs).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachAll(ctx, db, repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Repair, error) {
	var repairs []domain.Repair
	err := db.WithContext(ctx).Order("fecha asc, id asc").Find(&repairs).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachAll(ctx, db, repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

func (r *repo) ListByDocument(ctx context.Context, db *gorm.DB, ref domain.DocumentRef, docID snowflake.ID) ([]domain.Repair, error) {
	var repairs []domain.Repair
	err := db.WithContext(ctx).
		Where(string(ref)+" = ?", docID).
		Order("fecha asc, id asc").
		Find(&repairs).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachAll(ctx, db, repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, repair *domain.Repair) error {
	return db.WithContext(ctx).Model(&domain.Repair{}).
		Where("id = ?", repair.ID).
		Updates(map[string]any{
			"fecha":          repair.Fecha,
			"num_reparacion": repair.NumReparacion,
			"num_pedido":     repair.NumPedido,
			"location_id":    repair.LocationID,
			"comentarios":    repair.Comentarios,
			"updated_at":     repair.UpdatedAt,
		}).Error
}

func (r *repo) ReplaceWorkItems(ctx context.Context, db *gorm.DB, repairID snowflake.ID, rows []domain.RepairWorkItem) error {
	if err := db.WithContext(ctx).
		Where("repair_id = ?", repairID).
		Delete(&domain.RepairWorkItem{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).
		Where("repair_id = ?", id).
		Delete(&domain.RepairWorkItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Repair{}, "id = ?", id).Error
}

func (r *repo) SetDocument(ctx context.Context, db *gorm.DB, ref domain.DocumentRef, docID *snowflake.ID, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&domain.Repair{}).
		Where("id IN ?", ids).
		Update(string(ref), docID).Error
}

func (r *repo) StampOrderNumber(ctx context.Context, db *gorm.DB, ids []snowflake.ID, numPedido string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&domain.Repair{}).
		Where("id IN ?", ids).
		Update("num_pedido", numPedido).Error
}

func (r *repo) attachAll(ctx context.Context, db *gorm.DB, repairs []domain.Repair) error {
	refs := make([]*domain.Repair, 0, len(repairs))
	for i := range repairs {
		refs = append(refs, &repairs[i])
	}
	return r.attachWorkItems(ctx, db, refs)
}

// attachWorkItems loads join rows ordered by insertion so duplicates keep
// their original positions.
func (r *repo) attachWorkItems(ctx context.Context, db *gorm.DB, repairs []*domain.Repair) error {
	if len(repairs) == 0 {
		return nil
	}

	ids := make([]snowflake.ID, 0, len(repairs))
	byID := make(map[snowflake.ID]*domain.Repair, len(repairs))
	for _, repair := range repairs {
		ids = append(ids, repair.ID)
		byID[repair.ID] = repair
		repair.WorkItemIDs = nil
	}

	var rows []domain.RepairWorkItem
	err := db.WithContext(ctx).
		Where("repair_id IN ?", ids).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		if repair, ok := byID[row.RepairID]; ok {
			repair.WorkItemIDs = append(repair.WorkItemIDs, row.WorkItemID)
		}
	}
	return nil
}
