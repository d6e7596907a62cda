package domain

import (
	"context"
	"errors"
	"time"

	statedomain "github.com/servibill/servibill/internal/state/domain"
)

type CreateDocumentRequest struct {
	ClientID string    `json:"cliente"`
	Fecha    time.Time `json:"fecha"`
}

type ListInvoiceResponse struct {
	Invoices []Invoice `json:"facturas"`
}

type ListProformaResponse struct {
	Proformas []Proforma `json:"proformas"`
}

type AssignRepairsRequest struct {
	Kind       statedomain.Kind
	DocumentID string
	RepairIDs  []string `json:"reparaciones"`
}

type AdvanceRequest struct {
	Kind       statedomain.Kind
	DocumentID string
	Code       statedomain.Code `json:"estado"`
}

type ConvertRequest struct {
	ProformaID string
	NumPedido  string `json:"num_pedido"`
}

type Service interface {
	CreateInvoice(context.Context, CreateDocumentRequest) (Invoice, error)
	CreateProforma(context.Context, CreateDocumentRequest) (Proforma, error)
	ListInvoices(ctx context.Context) (ListInvoiceResponse, error)
	ListProformas(ctx context.Context) (ListProformaResponse, error)
	GetInvoice(ctx context.Context, id string) (Invoice, error)
	GetProforma(ctx context.Context, id string) (Proforma, error)

	// AssignRepairs binds repairs to one document atomically and
	// recomputes its totals. All ids succeed or none do.
	AssignRepairs(context.Context, AssignRepairsRequest) error
	// UnassignRepairs detaches repairs currently bound to the document.
	UnassignRepairs(context.Context, AssignRepairsRequest) error

	// Advance moves the document along its lifecycle. Used by the
	// delivery side channel after a successful send, never before.
	Advance(context.Context, AdvanceRequest) error

	// ConvertProformaToInvoice runs the whole conversion as one
	// transaction: stamp the order number on the proforma's repairs,
	// create the invoice, rebind the repairs, flag the proforma.
	ConvertProformaToInvoice(context.Context, ConvertRequest) (Invoice, error)

	// Delete removes the most-recently-numbered document of its kind,
	// detaching any remaining repairs first.
	Delete(ctx context.Context, kind statedomain.Kind, id string) error
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidClient     = errors.New("invalid_cliente")
	ErrInvalidFecha      = errors.New("invalid_fecha")
	ErrInvalidKind       = errors.New("invalid_tipo")
	ErrInvalidStatus     = errors.New("invalid_estado")
	ErrInvalidNumPedido  = errors.New("invalid_num_pedido")
	ErrNotFound          = errors.New("not_found")
	ErrRepairNotFound    = errors.New("repair_not_found")
	ErrRepairConflict    = errors.New("repair_already_assigned")
	ErrDocumentLocked    = errors.New("document_locked")
	ErrAlreadyConverted  = errors.New("proforma_already_converted")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrNotLatest         = errors.New("document_not_latest")
)
