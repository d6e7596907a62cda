package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateWorkItemRequest struct {
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Especial bool            `json:"especial"`
}

type UpdateWorkItemRequest struct {
	ID       string          `json:"-"`
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Especial bool            `json:"especial"`
}

type SetClientPriceRequest struct {
	WorkItemID string          `json:"-"`
	ClientID   string          `json:"cliente"`
	Precio     decimal.Decimal `json:"precio"`
}

type ListWorkItemResponse struct {
	WorkItems []WorkItem `json:"trabajos"`
}

type ListClientPriceResponse struct {
	Prices []ClientPrice `json:"precios"`
}

type Service interface {
	Create(context.Context, CreateWorkItemRequest) (WorkItem, error)
	List(context.Context) (ListWorkItemResponse, error)
	GetByID(ctx context.Context, id string) (WorkItem, error)
	Update(context.Context, UpdateWorkItemRequest) (WorkItem, error)
	Delete(ctx context.Context, id string) error

	SetClientPrice(context.Context, SetClientPriceRequest) (ClientPrice, error)
	ListClientPrices(ctx context.Context, workItemID string) (ListClientPriceResponse, error)
	DeleteClientPrice(ctx context.Context, workItemID, clientID string) error
}

// Pricer resolves the effective price of work items for a client. A
// client-specific override always supersedes the base price when present.
// Runs against the caller's transaction handle so billing totals stay
// consistent with the surrounding unit of work.
type Pricer interface {
	PricesFor(ctx context.Context, db *gorm.DB, clientID snowflake.ID, workItemIDs []snowflake.ID) (map[snowflake.ID]decimal.Decimal, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidNombre = errors.New("invalid_nombre")
	ErrInvalidPrecio = errors.New("invalid_precio")
	ErrNotFound      = errors.New("not_found")
)
