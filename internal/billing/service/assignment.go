package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/billing/domain"
	repairdomain "github.com/servibill/servibill/internal/repair/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssignRepairs binds the given repairs to one document. The whole set
// applies in a single transaction: a missing repair or one bound to a
// different document aborts without touching any row. Re-assigning ids
// already bound to the same document is a no-op. Totals are recomputed
// before the transaction commits.
func (s *Service) AssignRepairs(ctx context.Context, req domain.AssignRepairsRequest) error {
	docID, repairIDs, err := s.parseAssignment(req)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clientID, ref, err := s.lockEditableDocument(ctx, tx, req.Kind, docID)
		if err != nil {
			return err
		}

		repairs, err := s.repairRepo.FindByIDsForUpdate(ctx, tx, repairIDs)
		if err != nil {
			return err
		}
		if len(repairs) != len(repairIDs) {
			return domain.ErrRepairNotFound
		}

		for _, repair := range repairs {
			if conflicts(repair, ref, docID) {
				return domain.ErrRepairConflict
			}
		}

		if err := s.repairRepo.SetDocument(ctx, tx, ref, &docID, repairIDs); err != nil {
			return err
		}

		return s.recomputeTotals(ctx, tx, req.Kind, docID, clientID)
	})
	if err != nil {
		return err
	}

	s.log.Info("repairs assigned",
		zap.String("tipo", string(req.Kind)),
		zap.String("documento", docID.String()),
		zap.Int("reparaciones", len(repairIDs)),
	)
	return nil
}

// UnassignRepairs detaches repairs from the document that owns them and
// recomputes its totals. Ids bound to any other document are rejected.
func (s *Service) UnassignRepairs(ctx context.Context, req domain.AssignRepairsRequest) error {
	docID, repairIDs, err := s.parseAssignment(req)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clientID, ref, err := s.lockEditableDocument(ctx, tx, req.Kind, docID)
		if err != nil {
			return err
		}

		repairs, err := s.repairRepo.FindByIDsForUpdate(ctx, tx, repairIDs)
		if err != nil {
			return err
		}
		if len(repairs) != len(repairIDs) {
			return domain.ErrRepairNotFound
		}

		for _, repair := range repairs {
			current := refValue(repair, ref)
			if current != nil && *current != docID {
				return domain.ErrRepairConflict
			}
		}

		if err := s.repairRepo.SetDocument(ctx, tx, ref, nil, repairIDs); err != nil {
			return err
		}

		return s.recomputeTotals(ctx, tx, req.Kind, docID, clientID)
	})
}

// lockEditableDocument locks the target document and rejects documents
// that no longer accept changes. Returns the owning client and the repair
// column the assignment writes.
func (s *Service) lockEditableDocument(ctx context.Context, tx *gorm.DB, kind statedomain.Kind, docID snowflake.ID) (snowflake.ID, repairdomain.DocumentRef, error) {
	switch kind {
	case statedomain.KindFactura:
		invoice, err := s.repo.FindInvoiceByID(ctx, tx, docID, true)
		if err != nil {
			return 0, "", err
		}
		if invoice == nil {
			return 0, "", domain.ErrNotFound
		}
		if !invoice.Editable() {
			return 0, "", domain.ErrDocumentLocked
		}
		return invoice.ClientID, repairdomain.RefFactura, nil
	case statedomain.KindProforma:
		proforma, err := s.repo.FindProformaByID(ctx, tx, docID, true)
		if err != nil {
			return 0, "", err
		}
		if proforma == nil {
			return 0, "", domain.ErrNotFound
		}
		if !proforma.Editable() {
			return 0, "", domain.ErrDocumentLocked
		}
		return proforma.ClientID, repairdomain.RefProforma, nil
	}
	return 0, "", domain.ErrInvalidKind
}

// recomputeTotals rebuilds the document subtotal from its currently
// assigned repairs' work items, resolving client price overrides, then
// re-derives the taxed total.
func (s *Service) recomputeTotals(ctx context.Context, tx *gorm.DB, kind statedomain.Kind, docID, clientID snowflake.ID) error {
	ref := repairdomain.RefFactura
	if kind == statedomain.KindProforma {
		ref = repairdomain.RefProforma
	}

	repairs, err := s.repairRepo.ListByDocument(ctx, tx, ref, docID)
	if err != nil {
		return err
	}

	var itemIDs []snowflake.ID
	for _, repair := range repairs {
		itemIDs = append(itemIDs, repair.WorkItemIDs...)
	}

	subtotal := decimal.Zero
	if len(itemIDs) > 0 {
		prices, err := s.pricer.PricesFor(ctx, tx, clientID, uniqueIDs(itemIDs))
		if err != nil {
			return err
		}
		// Duplicate occurrences bill once each.
		for _, itemID := range itemIDs {
			subtotal = subtotal.Add(prices[itemID])
		}
	}
	subtotal = subtotal.Round(2)
	_, total := domain.ApplyIVA(subtotal)

	now := s.clock.Now()
	if kind == statedomain.KindFactura {
		return s.repo.UpdateInvoiceTotals(ctx, tx, docID, subtotal, total, now)
	}
	return s.repo.UpdateProformaTotals(ctx, tx, docID, subtotal, total, now)
}

func (s *Service) parseAssignment(req domain.AssignRepairsRequest) (snowflake.ID, []snowflake.ID, error) {
	if !req.Kind.Valid() {
		return 0, nil, domain.ErrInvalidKind
	}
	docID, err := s.parseID(req.DocumentID)
	if err != nil {
		return 0, nil, err
	}

	seen := make(map[snowflake.ID]struct{}, len(req.RepairIDs))
	repairIDs := make([]snowflake.ID, 0, len(req.RepairIDs))
	for _, raw := range req.RepairIDs {
		id, err := s.parseID(raw)
		if err != nil {
			return 0, nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		repairIDs = append(repairIDs, id)
	}
	if len(repairIDs) == 0 {
		return 0, nil, domain.ErrRepairNotFound
	}
	return docID, repairIDs, nil
}

// conflicts reports whether the repair is bound to any document other
// than the target one.
func conflicts(repair repairdomain.Repair, ref repairdomain.DocumentRef, docID snowflake.ID) bool {
	if repair.FacturaID != nil {
		if ref != repairdomain.RefFactura || *repair.FacturaID != docID {
			return true
		}
	}
	if repair.ProformaID != nil {
		if ref != repairdomain.RefProforma || *repair.ProformaID != docID {
			return true
		}
	}
	return false
}

func refValue(repair repairdomain.Repair, ref repairdomain.DocumentRef) *snowflake.ID {
	if ref == repairdomain.RefFactura {
		return repair.FacturaID
	}
	return repair.ProformaID
}

func uniqueIDs(ids []snowflake.ID) []snowflake.ID {
	seen := make(map[snowflake.ID]struct{}, len(ids))
	out := make([]snowflake.ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
