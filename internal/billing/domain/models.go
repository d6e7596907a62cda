// Package domain contains persistence models and the lifecycle rules for
// billing documents (facturas and proformas).
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	statedomain "github.com/servibill/servibill/internal/state/domain"
	"gorm.io/datatypes"
)

// IVARate is the fixed Spanish VAT rate applied to every document.
var IVARate = decimal.NewFromFloat(0.21)

// ApplyIVA derives the tax and the taxed total from a pre-tax subtotal.
// Rounding is half-up to 2 decimal places, applied to each figure from
// its own subtotal.
func ApplyIVA(subtotal decimal.Decimal) (iva, total decimal.Decimal) {
	iva = subtotal.Mul(IVARate).Round(2)
	total = subtotal.Add(iva).Round(2)
	return iva, total
}

// Invoice is a billable document. Seq is assigned once at creation and
// orders documents; Numero is its immutable display form. Subtotal and
// Total are always recomputed from the associated repairs, never set
// directly.
type Invoice struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey"`
	ClientID   snowflake.ID      `json:"cliente" gorm:"not null;index"`
	Fecha      time.Time         `json:"fecha" gorm:"not null;index"`
	StatusCode statedomain.Code  `json:"estado" gorm:"type:text;not null;default:'created'"`
	Seq        int64             `json:"-" gorm:"not null;uniqueIndex:ux_invoices_seq"`
	Numero     string            `json:"numero_factura" gorm:"type:text;not null;uniqueIndex"`
	Subtotal   decimal.Decimal   `json:"subtotal" gorm:"type:decimal(10,2);not null;default:0"`
	Total      decimal.Decimal   `json:"total" gorm:"type:decimal(10,2);not null;default:0"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Editable reports whether the invoice still accepts edits and repair
// assignment. Paid invoices are closed.
func (i Invoice) Editable() bool {
	return i.StatusCode != statedomain.CodePagada
}

// Proforma is a quote document. Once converted it keeps a permanent
// reference to the created invoice and refuses further changes.
type Proforma struct {
	ID                 snowflake.ID      `json:"id" gorm:"primaryKey"`
	ClientID           snowflake.ID      `json:"cliente" gorm:"not null;index"`
	Fecha              time.Time         `json:"fecha" gorm:"not null;index"`
	StatusCode         statedomain.Code  `json:"estado" gorm:"type:text;not null;default:'created'"`
	Seq                int64             `json:"-" gorm:"not null;uniqueIndex:ux_proformas_seq"`
	Numero             string            `json:"numero_proforma" gorm:"type:text;not null;uniqueIndex"`
	Subtotal           decimal.Decimal   `json:"subtotal" gorm:"type:decimal(10,2);not null;default:0"`
	Total              decimal.Decimal   `json:"total" gorm:"type:decimal(10,2);not null;default:0"`
	ConvertedInvoiceID *snowflake.ID     `json:"factura_generada,omitempty" gorm:"index"`
	Metadata           datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt          time.Time         `json:"created_at" gorm:"not null"`
	UpdatedAt          time.Time         `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Proforma) TableName() string { return "proformas" }

func (p Proforma) Converted() bool {
	return p.ConvertedInvoiceID != nil
}

// Editable reports whether the proforma still accepts edits and repair
// assignment.
func (p Proforma) Editable() bool {
	return !p.Converted()
}
