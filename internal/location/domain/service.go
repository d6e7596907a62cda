package domain

import (
	"context"
	"errors"
)

type CreateLocationRequest struct {
	Calle    string `json:"calle"`
	Numero   string `json:"numero"`
	Ciudad   string `json:"ciudad"`
	Escalera string `json:"escalera"`
	Ascensor bool   `json:"ascensor"`
}

type UpdateLocationRequest struct {
	ID       string `json:"-"`
	Calle    string `json:"calle"`
	Numero   string `json:"numero"`
	Ciudad   string `json:"ciudad"`
	Escalera string `json:"escalera"`
	Ascensor bool   `json:"ascensor"`
}

type ListLocationResponse struct {
	Locations []Location `json:"localizaciones"`
}

type Service interface {
	Create(context.Context, CreateLocationRequest) (Location, error)
	List(context.Context) (ListLocationResponse, error)
	GetByID(ctx context.Context, id string) (Location, error)
	Update(context.Context, UpdateLocationRequest) (Location, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidCalle = errors.New("invalid_calle")
	ErrNotFound     = errors.New("not_found")
)
