package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/servibill/servibill/internal/billing/domain"
	statedomain "github.com/servibill/servibill/internal/state/domain"
)

func TestConvertProformaToInvoice(t *testing.T) {
	env := setupBillingTest(t)
	ctx := context.Background()

	ajuste := env.createWorkItem(t, "Ajuste de puerta", "40.00")
	engrase := env.createWorkItem(t, "Engrase general", "35.50")
	r1 := env.createRepair(t, "R-100", ajuste)
	r2 := env.createRepair(t, "R-101", engrase)
	quote := env.createProforma(t)

	require.NoError(t, env.billing.AssignRepairs(ctx, domain.AssignRepairsRequest{
		Kind:       statedomain.KindProforma,
		DocumentID: quote.ID.String(),
		RepairIDs:  []string{r1.ID.String(), r2.ID.String()},
	}))

	invoice, err := env.billing.ConvertProformaToInvoice(ctx, domain.ConvertRequest{
		ProformaID: quote.ID.String(),
		NumPedido:  "OP-42",
	})
	require.NoError(t, err)

	require.Equal(t, "F-000001", invoice.Numero)
	require.Equal(t, statedomain.CodeCreada, invoice.StatusCode)
	require.Equal(t, env.client.ID, invoice.ClientID)
	requireMoney(t, "75.50", invoice.Subtotal)
	requireMoney(t, "91.36", invoice.Total)

	// Repairs were stamped and rebound to the new invoice.
	for _, id := range []string{r1.ID.String(), r2.ID.String()} {
		repair, err := env.repairs.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "OP-42", repair.NumPedido)
		require.Nil(t, repair.ProformaID)
		require.NotNil(t, repair.FacturaID)
		require.Equal(t, invoice.ID, *repair.FacturaID)
	}

	// The proforma keeps a permanent back-reference and refuses changes.
	converted, err := env.billing.GetProforma(ctx, quote.ID.String())
	require.NoError(t, err)
	require.NotNil(t, converted.ConvertedInvoiceID)
	require.Equal(t, invoice.ID, *converted.ConvertedInvoiceID)
	require.False(t, converted.Editable())
}

func TestConvertProformaTwiceFails(t *testing.T) {
	env := setupBillingTest(t)
	ctx := context.Background()
	quote := env.createProforma(t)

	_, err := env.billing.ConvertProformaToInvoice(ctx, domain.ConvertRequest{
		ProformaID: quote.ID.String(),
		NumPedido:  "OP-1",
	})
	require.NoError(t, err)

	_, err = env.billing.ConvertProformaToInvoice(ctx, domain.ConvertRequest{
		ProformaID: quote.ID.String(),
		NumPedido:  "OP-2",
	})
	require.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestConvertedProformaRejectsAssignmentAndAdvance(t *testing.T) {
	env := setupBillingTest(t)
	ctx := context.Background()

	item := env.createWorkItem(t, "Revision anual", "60.00")
	repair := env.createRepair(t, "R-900", item)
	quote := env.createProforma(t)

	_, err := env.billing.ConvertProformaToInvoice(ctx, domain.ConvertRequest{
		ProformaID: quote.ID.String(),
		NumPedido:  "OP-7",
	})
	require.NoError(t, err)

	err = env.billing.AssignRepairs(ctx, domain.AssignRepairsRequest{
		Kind:       statedomain.KindProforma,
		DocumentID: quote.ID.String(),
		RepairIDs:  []string{repair.ID.String()},
	})
	require.ErrorIs(t, err, domain.ErrDocumentLocked)

	err = env.billing.Advance(ctx, domain.AdvanceRequest{
		Kind: statedomain.KindProforma, DocumentID: quote.ID.String(), Code: statedomain.CodeEnviada,
	})
	require.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestConvertRequiresOrderNumber(t *testing.T) {
	env := setupBillingTest(t)
	quote := env.createProforma(t)

	_, err := env.billing.ConvertProformaToInvoice(context.Background(), domain.ConvertRequest{
		ProformaID: quote.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidNumPedido)
}
