package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/billing/domain"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConvertProformaToInvoice turns an accepted quote into a real invoice.
// The whole workflow runs in one transaction: stamp the order number on
// every repair of the proforma, create the invoice with the next sequence
// number, rebind the repairs to it, and flag the proforma with a
// permanent back-reference. A failure at any step rolls everything back,
// so repairs can never end up stamped but still attached to an
// unconverted proforma.
func (s *Service) ConvertProformaToInvoice(ctx context.Context, req domain.ConvertRequest) (domain.Invoice, error) {
	proformaID, err := s.parseID(req.ProformaID)
	if err != nil {
		return domain.Invoice{}, err
	}

	numPedido := strings.TrimSpace(req.NumPedido)
	if numPedido == "" {
		return domain.Invoice{}, domain.ErrInvalidNumPedido
	}

	var invoice domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proforma, err := s.repo.FindProformaByID(ctx, tx, proformaID, true)
		if err != nil {
			return err
		}
		if proforma == nil {
			return domain.ErrNotFound
		}
		if proforma.Converted() {
			return domain.ErrAlreadyConverted
		}

		repairs, err := s.repairRepo.ListByDocument(ctx, tx, repairdomain.RefProforma, proformaID)
		if err != nil {
			return err
		}

		repairIDs := make([]snowflake.ID, 0, len(repairs))
		for _, repair := range repairs {
			repairIDs = append(repairIDs, repair.ID)
		}

		if err := s.repairRepo.StampOrderNumber(ctx, tx, repairIDs, numPedido); err != nil {
			return err
		}

		created, err := s.createInvoiceTx(ctx, tx, proforma.ClientID, proforma.Fecha)
		if err != nil {
			return err
		}

		if err := s.repairRepo.SetDocument(ctx, tx, repairdomain.RefProforma, nil, repairIDs); err != nil {
			return err
		}
		if err := s.repairRepo.SetDocument(ctx, tx, repairdomain.RefFactura, &created.ID, repairIDs); err != nil {
			return err
		}

		if err := s.repo.SetProformaConverted(ctx, tx, proformaID, created.ID, s.clock.Now()); err != nil {
			return err
		}

		if err := s.recomputeTotals(ctx, tx, statedomain.KindFactura, created.ID, created.ClientID); err != nil {
			return err
		}

		fresh, err := s.repo.FindInvoiceByID(ctx, tx, created.ID, false)
		if err != nil {
			return err
		}
		invoice = *fresh
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("proforma converted",
		zap.String("proforma", proformaID.String()),
		zap.String("factura", invoice.Numero),
		zap.String("num_pedido", numPedido),
	)
	return invoice, nil
}
