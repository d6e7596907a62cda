package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/billing/domain"
	clientdomain "github.com/servibill/servibill/internal/client/domain"
	"github.com/servibill/servibill/internal/clock"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	workitemdomain "github.com/servibill/servibill/internal/workitem/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	GenID      *snowflake.Node
	Repo       domain.Repository
	RepairRepo repairdomain.Repository
	ClientRepo clientdomain.Repository
	Pricer     workitemdomain.Pricer
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	genID      *snowflake.Node
	repo       domain.Repository
	repairRepo repairdomain.Repository
	clientRepo clientdomain.Repository
	pricer     workitemdomain.Pricer
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("billing.service"),
		clock:      p.Clock,
		genID:      p.GenID,
		repo:       p.Repo,
		repairRepo: p.RepairRepo,
		clientRepo: p.ClientRepo,
		pricer:     p.Pricer,
	}
}

func (s *Service) CreateInvoice(ctx context.Context, req domain.CreateDocumentRequest) (domain.Invoice, error) {
	clientID, fecha, err := s.validateCreate(ctx, req)
	if err != nil {
		return domain.Invoice{}, err
	}

	var invoice domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.createInvoiceTx(ctx, tx, clientID, fecha)
		if err != nil {
			return err
		}
		invoice = *created
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created", zap.String("numero", invoice.Numero))
	return invoice, nil
}

// createInvoiceTx assigns the next sequence number and inserts the
// invoice inside the caller's transaction. Conversion reuses it so the
// new invoice commits or rolls back with the rest of the workflow.
func (s *Service) createInvoiceTx(ctx context.Context, tx *gorm.DB, clientID snowflake.ID, fecha time.Time) (*domain.Invoice, error) {
	seq, err := s.repo.MaxInvoiceSeq(ctx, tx)
	if err != nil {
		return nil, err
	}
	seq++

	now := s.clock.Now()
	invoice := domain.Invoice{
		ID:         s.genID.Generate(),
		ClientID:   clientID,
		Fecha:      fecha,
		StatusCode: statedomain.CodeCreada,
		Seq:        seq,
		Numero:     fmt.Sprintf("F-%06d", seq),
		Subtotal:   decimal.Zero,
		Total:      decimal.Zero,
		Metadata:   datatypes.JSONMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.InsertInvoice(ctx, tx, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *Service) CreateProforma(ctx context.Context, req domain.CreateDocumentRequest) (domain.Proforma, error) {
	clientID, fecha, err := s.validateCreate(ctx, req)
	if err != nil {
		return domain.Proforma{}, err
	}

	var proforma domain.Proforma
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.MaxProformaSeq(ctx, tx)
		if err != nil {
			return err
		}
		seq++

		now := s.clock.Now()
		proforma = domain.Proforma{
			ID:         s.genID.Generate(),
			ClientID:   clientID,
			Fecha:      fecha,
			StatusCode: statedomain.CodeCreada,
			Seq:        seq,
			Numero:     fmt.Sprintf("P-%06d", seq),
			Subtotal:   decimal.Zero,
			Total:      decimal.Zero,
			Metadata:   datatypes.JSONMap{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return s.repo.InsertProforma(ctx, tx, &proforma)
	})
	if err != nil {
		return domain.Proforma{}, err
	}

	s.log.Info("proforma created", zap.String("numero", proforma.Numero))
	return proforma, nil
}

func (s *Service) ListInvoices(ctx context.Context) (domain.ListInvoiceResponse, error) {
	invoices, err := s.repo.ListInvoices(ctx, s.db)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	return domain.ListInvoiceResponse{Invoices: invoices}, nil
}

func (s *Service) ListProformas(ctx context.Context) (domain.ListProformaResponse, error) {
	proformas, err := s.repo.ListProformas(ctx, s.db)
	if err != nil {
		return domain.ListProformaResponse{}, err
	}
	return domain.ListProformaResponse{Proformas: proformas}, nil
}

func (s *Service) GetInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	invoiceID, err := s.parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindInvoiceByID(ctx, s.db, invoiceID, false)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) GetProforma(ctx context.Context, id string) (domain.Proforma, error) {
	proformaID, err := s.parseID(id)
	if err != nil {
		return domain.Proforma{}, err
	}

	proforma, err := s.repo.FindProformaByID(ctx, s.db, proformaID, false)
	if err != nil {
		return domain.Proforma{}, err
	}
	if proforma == nil {
		return domain.Proforma{}, domain.ErrNotFound
	}
	return *proforma, nil
}

func (s *Service) validateCreate(ctx context.Context, req domain.CreateDocumentRequest) (snowflake.ID, time.Time, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil {
		return 0, time.Time{}, domain.ErrInvalidClient
	}
	if req.Fecha.IsZero() {
		return 0, time.Time{}, domain.ErrInvalidFecha
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return 0, time.Time{}, err
	}
	if client == nil {
		return 0, time.Time{}, domain.ErrInvalidClient
	}

	return clientID, req.Fecha.UTC(), nil
}

func (s *Service) parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
