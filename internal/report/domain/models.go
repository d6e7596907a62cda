// Package domain contains the period revenue aggregation used for
// reporting.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ClientTotal is one client's rollup within a period. IVA and Total are
// derived from the client's own subtotal, not by summing other rounded
// figures.
type ClientTotal struct {
	ClientID snowflake.ID    `json:"cliente"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}

// QuarterReport covers one calendar quarter. Quarters with no invoices
// stay in the report for calendar continuity with an empty client list.
type QuarterReport struct {
	Year    int       `json:"anio"`
	Quarter int       `json:"trimestre"`
	Start   time.Time `json:"desde"`
	End     time.Time `json:"hasta"`

	Clients  []ClientTotal   `json:"clientes"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}

// HasData reports whether any invoice fell in the quarter.
func (q QuarterReport) HasData() bool {
	return len(q.Clients) > 0
}

// AnnualReport re-rolls the four quarters per client for the year.
type AnnualReport struct {
	Year     int             `json:"anio"`
	Clients  []ClientTotal   `json:"clientes"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}
