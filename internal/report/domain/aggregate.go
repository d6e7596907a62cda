package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	billingdomain "github.com/servibill/servibill/internal/billing/domain"
)

// QuarterStart returns the first instant of the given quarter (1..4) in UTC.
func QuarterStart(year, quarter int) time.Time {
	return time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
}

// AggregateByQuarter buckets invoices into the four calendar quarters of
// year using half open intervals [start, nextStart). Invoices outside the
// year are ignored. A non positive year or nil input yields four empty
// quarters.
func AggregateByQuarter(invoices []billingdomain.Invoice, year int) [4]QuarterReport {
	var out [4]QuarterReport
	for q := 1; q <= 4; q++ {
		out[q-1] = QuarterReport{
			Year:     year,
			Quarter:  q,
			Start:    QuarterStart(year, q),
			End:      quarterEnd(year, q),
			Subtotal: decimal.Zero,
			IVA:      decimal.Zero,
			Total:    decimal.Zero,
		}
	}
	if year <= 0 || len(invoices) == 0 {
		return out
	}

	buckets := [4]map[snowflake.ID]decimal.Decimal{}
	for _, inv := range invoices {
		q := quarterOf(inv.Fecha, year)
		if q == 0 {
			continue
		}
		if buckets[q-1] == nil {
			buckets[q-1] = map[snowflake.ID]decimal.Decimal{}
		}
		buckets[q-1][inv.ClientID] = buckets[q-1][inv.ClientID].Add(inv.Subtotal)
	}

	for i := range out {
		out[i].Clients = rollClients(buckets[i])
		// The quarter's tax derives from the quarter's own subtotal, not
		// from summing the already rounded client rows, so the figures can
		// differ from that sum by a cent.
		for _, c := range out[i].Clients {
			out[i].Subtotal = out[i].Subtotal.Add(c.Subtotal)
		}
		out[i].IVA, out[i].Total = billingdomain.ApplyIVA(out[i].Subtotal)
	}
	return out
}

// QuartersWithData filters the fixed array down to the quarters that saw
// at least one invoice.
func QuartersWithData(quarters [4]QuarterReport) []QuarterReport {
	var out []QuarterReport
	for _, q := range quarters {
		if q.HasData() {
			out = append(out, q)
		}
	}
	return out
}

// AggregateAnnual re-rolls the quarterly figures per client so the annual
// IVA is computed from each client's full year subtotal rather than by
// summing already rounded quarterly amounts.
func AggregateAnnual(quarters [4]QuarterReport) AnnualReport {
	year := quarters[0].Year
	byClient := map[snowflake.ID]decimal.Decimal{}
	for _, q := range quarters {
		for _, c := range q.Clients {
			byClient[c.ClientID] = byClient[c.ClientID].Add(c.Subtotal)
		}
	}

	rep := AnnualReport{
		Year:     year,
		Clients:  rollClients(byClient),
		Subtotal: decimal.Zero,
	}
	for _, c := range rep.Clients {
		rep.Subtotal = rep.Subtotal.Add(c.Subtotal)
	}
	rep.IVA, rep.Total = billingdomain.ApplyIVA(rep.Subtotal)
	return rep
}

func rollClients(byClient map[snowflake.ID]decimal.Decimal) []ClientTotal {
	if len(byClient) == 0 {
		return nil
	}
	out := make([]ClientTotal, 0, len(byClient))
	for id, subtotal := range byClient {
		subtotal = subtotal.Round(2)
		iva, total := billingdomain.ApplyIVA(subtotal)
		out = append(out, ClientTotal{ClientID: id, Subtotal: subtotal, IVA: iva, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return out
}

func quarterOf(t time.Time, year int) int {
	for q := 1; q <= 4; q++ {
		if !t.Before(QuarterStart(year, q)) && t.Before(quarterEnd(year, q)) {
			return q
		}
	}
	return 0
}

func quarterEnd(year, quarter int) time.Time {
	if quarter == 4 {
		return QuarterStart(year+1, 1)
	}
	return QuarterStart(year, quarter+1)
}
