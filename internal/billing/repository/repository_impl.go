package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/billing/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertInvoice(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindInvoiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock bool) (*domain.Invoice, error) {
	stmt := db.WithContext(ctx)
	if lock {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var invoice domain.Invoice
	err := stmt.First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) ListInvoices(ctx context.Context, db *gorm.DB) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).Order("seq desc").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) ListInvoicesBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Where("fecha >= ? AND fecha < ?", from, to).
		Order("fecha asc, seq asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) UpdateInvoiceStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, code statedomain.Code, at time.Time) error {
	return db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"status_code": code, "updated_at": at}).Error
}

func (r *repo) UpdateInvoiceTotals(ctx context.Context, db *gorm.DB, id snowflake.ID, subtotal, total decimal.Decimal, at time.Time) error {
	return db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"subtotal": subtotal, "total": total, "updated_at": at}).Error
}

func (r *repo) DeleteInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id).Error
}

func (r *repo) MaxInvoiceSeq(ctx context.Context, db *gorm.DB) (int64, error) {
	var max int64
	err := db.WithContext(ctx).Model(&domain.Invoice{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&max).Error
	return max, err
}

func (r *repo) InsertProforma(ctx context.Context, db *gorm.DB, proforma *domain.Proforma) error {
	return db.WithContext(ctx).Create(proforma).Error
}

func (r *repo) FindProformaByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock bool) (*domain.Proforma, error) {
	stmt := db.WithContext(ctx)
	if lock {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var proforma domain.Proforma
	err := stmt.First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &proforma, nil
}

func (r *repo) ListProformas(ctx context.Context, db *gorm.DB) ([]domain.Proforma, error) {
	var proformas []domain.Proforma
	err := db.WithContext(ctx).Order("seq desc").Find(&proformas).Error
	if err != nil {
		return nil, err
	}
	return proformas, nil
}

func (r *repo) UpdateProformaStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, code statedomain.Code, at time.Time) error {
	return db.WithContext(ctx).Model(&domain.Proforma{}).
		Where("id = ?", id).
		Updates(map[string]any{"status_code": code, "updated_at": at}).Error
}

func (r *repo) UpdateProformaTotals(ctx context.Context, db *gorm.DB, id snowflake.ID, subtotal, total decimal.Decimal, at time.Time) error {
	return db.WithContext(ctx).Model(&domain.Proforma{}).
		Where("id = ?", id).
		Updates(map[string]any{"subtotal": subtotal, "total": total, "updated_at": at}).Error
}

func (r *repo) SetProformaConverted(ctx context.Context, db *gorm.DB, id, invoiceID snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).Model(&domain.Proforma{}).
		Where("id = ?", id).
		Updates(map[string]any{"converted_invoice_id": invoiceID, "updated_at": at}).Error
}

func (r *repo) DeleteProforma(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Proforma{}, "id = ?", id).Error
}

func (r *repo) MaxProformaSeq(ctx context.Context, db *gorm.DB) (int64, error) {
	var max int64
	err := db.WithContext(ctx).Model(&domain.Proforma{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&max).Error
	return max, err
}
