package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingdomain "github.com/servibill/servibill/internal/billing/domain"
	"github.com/servibill/servibill/internal/report/domain"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Billing billingdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	billing billingdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("report.service"),
		billing: p.Billing,
	}
}

// Quarterly reports the year's invoiced revenue grouped by calendar
// quarter and client. Proformas never feed reports. Quarters without
// invoices are omitted from the response.
func (s *Service) Quarterly(ctx context.Context, year int) (domain.QuarterlyResponse, error) {
	quarters, err := s.aggregate(ctx, year)
	if err != nil {
		return domain.QuarterlyResponse{}, err
	}
	return domain.QuarterlyResponse{
		Year:     year,
		Quarters: domain.QuartersWithData(quarters),
	}, nil
}

// Annual re-rolls the year per client so rounding happens once on each
// client's full year subtotal.
func (s *Service) Annual(ctx context.Context, year int) (domain.AnnualReport, error) {
	quarters, err := s.aggregate(ctx, year)
	if err != nil {
		return domain.AnnualReport{}, err
	}
	return domain.AggregateAnnual(quarters), nil
}

func (s *Service) aggregate(ctx context.Context, year int) ([4]domain.QuarterReport, error) {
	if year <= 0 {
		return [4]domain.QuarterReport{}, domain.ErrInvalidYear
	}

	from := domain.QuarterStart(year, 1)
	invoices, err := s.billing.ListInvoicesBetween(ctx, s.db, from, from.AddDate(1, 0, 0))
	if err != nil {
		return [4]domain.QuarterReport{}, err
	}
	s.log.Debug("aggregating invoices", zap.Int("year", year), zap.Int("invoices", len(invoices)))
	return domain.AggregateByQuarter(invoices, year), nil
}
