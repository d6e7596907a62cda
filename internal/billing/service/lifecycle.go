package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/billing/domain"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Advance moves a document to the requested lifecycle state. Illegal
// moves, including any transition out of a terminal state, are rejected.
// The delivery side channel calls this with the "sent" code only after a
// successful send; the state is never advanced speculatively.
func (s *Service) Advance(ctx context.Context, req domain.AdvanceRequest) error {
	if !req.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	if !domain.ValidCode(req.Kind, req.Code) {
		return domain.ErrInvalidStatus
	}

	docID, err := s.parseID(req.DocumentID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.clock.Now()

		switch req.Kind {
		case statedomain.KindFactura:
			invoice, err := s.repo.FindInvoiceByID(ctx, tx, docID, true)
			if err != nil {
				return err
			}
			if invoice == nil {
				return domain.ErrNotFound
			}
			if !domain.CanTransition(req.Kind, invoice.StatusCode, req.Code) {
				return domain.ErrInvalidTransition
			}
			return s.repo.UpdateInvoiceStatus(ctx, tx, docID, req.Code, now)
		default:
			proforma, err := s.repo.FindProformaByID(ctx, tx, docID, true)
			if err != nil {
				return err
			}
			if proforma == nil {
				return domain.ErrNotFound
			}
			if proforma.Converted() {
				return domain.ErrAlreadyConverted
			}
			if !domain.CanTransition(req.Kind, proforma.StatusCode, req.Code) {
				return domain.ErrInvalidTransition
			}
			return s.repo.UpdateProformaStatus(ctx, tx, docID, req.Code, now)
		}
	})
	if err != nil {
		return err
	}

	s.log.Info("document state advanced",
		zap.String("tipo", string(req.Kind)),
		zap.String("documento", docID.String()),
		zap.String("estado", string(req.Code)),
	)
	return nil
}

// Delete removes a document. Only the most-recently-numbered document of
// its kind may go, so the sequence stays contiguous. Repairs still
// attached are detached to unassigned in the same transaction; they are
// never cascade-deleted.
func (s *Service) Delete(ctx context.Context, kind statedomain.Kind, id string) error {
	if !kind.Valid() {
		return domain.ErrInvalidKind
	}
	docID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case statedomain.KindFactura:
			invoice, err := s.repo.FindInvoiceByID(ctx, tx, docID, true)
			if err != nil {
				return err
			}
			if invoice == nil {
				return domain.ErrNotFound
			}
			maxSeq, err := s.repo.MaxInvoiceSeq(ctx, tx)
			if err != nil {
				return err
			}
			if invoice.Seq != maxSeq {
				return domain.ErrNotLatest
			}
			if err := s.detachAll(ctx, tx, repairdomain.RefFactura, docID); err != nil {
				return err
			}
			return s.repo.DeleteInvoice(ctx, tx, docID)
		default:
			proforma, err := s.repo.FindProformaByID(ctx, tx, docID, true)
			if err != nil {
				return err
			}
			if proforma == nil {
				return domain.ErrNotFound
			}
			maxSeq, err := s.repo.MaxProformaSeq(ctx, tx)
			if err != nil {
				return err
			}
			if proforma.Seq != maxSeq {
				return domain.ErrNotLatest
			}
			if err := s.detachAll(ctx, tx, repairdomain.RefProforma, docID); err != nil {
				return err
			}
			return s.repo.DeleteProforma(ctx, tx, docID)
		}
	})
}

func (s *Service) detachAll(ctx context.Context, tx *gorm.DB, ref repairdomain.DocumentRef, docID snowflake.ID) error {
	repairs, err := s.repairRepo.ListByDocument(ctx, tx, ref, docID)
	if err != nil {
		return err
	}
	if len(repairs) == 0 {
		return nil
	}

	ids := make([]snowflake.ID, 0, len(repairs))
	for _, repair := range repairs {
		ids = append(ids, repair.ID)
	}
	return s.repairRepo.SetDocument(ctx, tx, ref, nil, ids)
}
