package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRepairRequest struct {
	Fecha         time.Time `json:"fecha"`
	NumReparacion string    `json:"num_reparacion"`
	NumPedido     string    `json:"num_pedido"`
	LocationID    string    `json:"localizacion"`
	WorkItemIDs   []string  `json:"trabajos"`
	Comentarios   string    `json:"comentarios"`
}

type UpdateRepairRequest struct {
	ID            string    `json:"-"`
	Fecha         time.Time `json:"fecha"`
	NumReparacion string    `json:"num_reparacion"`
	NumPedido     string    `json:"num_pedido"`
	LocationID    string    `json:"localizacion"`
	WorkItemIDs   []string  `json:"trabajos"`
	Comentarios   string    `json:"comentarios"`
}

type ListRepairResponse struct {
	Repairs []Repair `json:"reparaciones"`
}

// ListGroupedRequest selects the grouped view; when Asignables is set the
// result is filtered to groups the given document may take.
type ListGroupedRequest struct {
	Asignables bool
	Tipo       string // "factura" | "proforma", with DocumentID
	DocumentID string
}

type ListGroupedResponse struct {
	Groups []Group `json:"grupos"`
}

type Service interface {
	Create(context.Context, CreateRepairRequest) (Repair, error)
	List(context.Context) (ListRepairResponse, error)
	GetByID(ctx context.Context, id string) (Repair, error)
	Update(context.Context, UpdateRepairRequest) (Repair, error)
	Delete(ctx context.Context, id string) error

	ListGrouped(context.Context, ListGroupedRequest) (ListGroupedResponse, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidFecha    = errors.New("invalid_fecha")
	ErrInvalidLocation = errors.New("invalid_localizacion")
	ErrInvalidTipo     = errors.New("invalid_tipo")
	ErrNotFound        = errors.New("not_found")
	ErrAssigned        = errors.New("repair_assigned")
)
