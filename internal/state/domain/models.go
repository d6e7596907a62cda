// Package domain contains reference data for document lifecycle states.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind distinguishes the two billing document types.
type Kind string

const (
	KindFactura  Kind = "factura"
	KindProforma Kind = "proforma"
)

func (k Kind) Valid() bool {
	return k == KindFactura || k == KindProforma
}

// Code is the stable symbolic identity of a lifecycle state. The engine
// keys on Code; Nombre and Descripcion are editable display labels only.
type Code string

const (
	CodeCreada        Code = "created"
	CodeEnviada       Code = "sent"
	CodePendientePago Code = "pending_payment"
	CodePagada        Code = "paid"
	CodeAceptada      Code = "accepted"
)

// State is a lifecycle label row. (Kind, Code) is immutable after seed;
// only the human-readable fields may be edited.
type State struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Kind        Kind         `json:"tipo" gorm:"type:text;not null;uniqueIndex:ux_states_kind_code"`
	Code        Code         `json:"codigo" gorm:"type:text;not null;uniqueIndex:ux_states_kind_code"`
	Nombre      string       `json:"nombre" gorm:"type:text;not null"`
	Descripcion string       `json:"descripcion" gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (State) TableName() string { return "estados" }

// Defaults returns the seed rows for both document kinds.
func Defaults() []State {
	return []State{
		{Kind: KindFactura, Code: CodeCreada, Nombre: "Creada", Descripcion: "Factura creada"},
		{Kind: KindFactura, Code: CodeEnviada, Nombre: "Enviada", Descripcion: "Factura enviada al cliente"},
		{Kind: KindFactura, Code: CodePendientePago, Nombre: "Pendiente pago", Descripcion: "Factura pendiente de pago"},
		{Kind: KindFactura, Code: CodePagada, Nombre: "Pagada", Descripcion: "Factura pagada"},
		{Kind: KindProforma, Code: CodeCreada, Nombre: "Creada", Descripcion: "Proforma creada"},
		{Kind: KindProforma, Code: CodeEnviada, Nombre: "Enviada", Descripcion: "Proforma enviada al cliente"},
		{Kind: KindProforma, Code: CodeAceptada, Nombre: "Aceptada", Descripcion: "Proforma aceptada por el cliente"},
	}
}
