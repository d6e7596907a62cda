package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	billingdomain "github.com/servibill/servibill/internal/billing/domain"
)

func TestAggregateByQuarter(t *testing.T) {
	node := mustNode(t)
	clientA := node.Generate()
	clientB := node.Generate()

	invoices := []billingdomain.Invoice{
		invoice(node, clientA, date(2025, 1, 15), "100"),
		invoice(node, clientA, date(2025, 2, 20), "200"),
		invoice(node, clientB, date(2025, 2, 25), "50.10"),
		invoice(node, clientA, date(2025, 7, 1), "10"),
	}

	quarters := AggregateByQuarter(invoices, 2025)

	q1 := quarters[0]
	require.Equal(t, 1, q1.Quarter)
	require.True(t, q1.HasData())
	require.Len(t, q1.Clients, 2)

	// Client totals derive IVA from each client's own subtotal.
	byClient := map[snowflake.ID]ClientTotal{}
	for _, c := range q1.Clients {
		byClient[c.ClientID] = c
	}
	requireMoney(t, "300", byClient[clientA].Subtotal)
	requireMoney(t, "63.00", byClient[clientA].IVA)
	requireMoney(t, "363.00", byClient[clientA].Total)
	requireMoney(t, "50.10", byClient[clientB].Subtotal)
	requireMoney(t, "10.52", byClient[clientB].IVA)
	requireMoney(t, "60.62", byClient[clientB].Total)

	requireMoney(t, "350.10", q1.Subtotal)

	// Q2 is empty but still present; Q3 holds the July invoice.
	require.False(t, quarters[1].HasData())
	require.True(t, quarters[2].HasData())
	requireMoney(t, "10", quarters[2].Subtotal)

	withData := QuartersWithData(quarters)
	require.Len(t, withData, 2)
	require.Equal(t, 1, withData[0].Quarter)
	require.Equal(t, 3, withData[1].Quarter)
}

func TestAggregateByQuarterTaxesOwnSubtotal(t *testing.T) {
	node := mustNode(t)
	clientA := node.Generate()
	clientB := node.Generate()

	// Per client: 10.03 * 0.21 = 2.1063, rounded 2.11, summing to 4.22.
	// The quarter taxes its own subtotal: 20.06 * 0.21 = 4.2126 -> 4.21.
	invoices := []billingdomain.Invoice{
		invoice(node, clientA, date(2025, 1, 10), "10.03"),
		invoice(node, clientB, date(2025, 1, 11), "10.03"),
	}

	quarters := AggregateByQuarter(invoices, 2025)
	q1 := quarters[0]
	requireMoney(t, "2.11", q1.Clients[0].IVA)
	requireMoney(t, "2.11", q1.Clients[1].IVA)
	requireMoney(t, "20.06", q1.Subtotal)
	requireMoney(t, "4.21", q1.IVA)
	requireMoney(t, "24.27", q1.Total)
}

func TestAggregateByQuarterBoundaries(t *testing.T) {
	node := mustNode(t)
	client := node.Generate()

	// Quarter intervals are half open: the first instant of April opens
	// Q2, the last instant of March still belongs to Q1.
	invoices := []billingdomain.Invoice{
		invoice(node, client, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), "10"),
		invoice(node, client, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "20"),
		invoice(node, client, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), "999"),
		invoice(node, client, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "999"),
	}

	quarters := AggregateByQuarter(invoices, 2025)
	requireMoney(t, "10", quarters[0].Subtotal)
	requireMoney(t, "20", quarters[1].Subtotal)
	require.False(t, quarters[2].HasData())
	require.False(t, quarters[3].HasData())
}

func TestAggregateByQuarterEmpty(t *testing.T) {
	quarters := AggregateByQuarter(nil, 2025)
	for i, q := range quarters {
		require.Equal(t, i+1, q.Quarter)
		require.False(t, q.HasData())
		requireMoney(t, "0", q.Subtotal)
	}
	require.Empty(t, QuartersWithData(quarters))

	quarters = AggregateByQuarter([]billingdomain.Invoice{{Subtotal: decimal.New(1, 0)}}, 0)
	require.Empty(t, QuartersWithData(quarters))
}

func TestAggregateAnnual(t *testing.T) {
	node := mustNode(t)
	client := node.Generate()

	// Each quarter's 0.02 yields 0.00 IVA on its own. The annual rollup
	// taxes the full year subtotal, so the cents reappear.
	invoices := []billingdomain.Invoice{
		invoice(node, client, date(2025, 2, 1), "0.02"),
		invoice(node, client, date(2025, 5, 1), "0.02"),
	}

	quarters := AggregateByQuarter(invoices, 2025)
	requireMoney(t, "0.00", quarters[0].IVA)
	requireMoney(t, "0.00", quarters[1].IVA)

	annual := AggregateAnnual(quarters)
	require.Equal(t, 2025, annual.Year)
	require.Len(t, annual.Clients, 1)
	requireMoney(t, "0.04", annual.Subtotal)
	requireMoney(t, "0.01", annual.IVA)
	requireMoney(t, "0.05", annual.Total)
}

func invoice(node *snowflake.Node, clientID snowflake.ID, fecha time.Time, subtotal string) billingdomain.Invoice {
	return billingdomain.Invoice{
		ID:       node.Generate(),
		ClientID: clientID,
		Fecha:    fecha,
		Subtotal: decimal.RequireFromString(subtotal),
	}
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func requireMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
