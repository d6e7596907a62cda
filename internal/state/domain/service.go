package domain

import (
	"context"
	"errors"
)

type ListStateRequest struct {
	Kind Kind
}

type ListStateResponse struct {
	States []State `json:"estados"`
}

type UpdateStateRequest struct {
	ID          string
	Nombre      string
	Descripcion string
}

type Service interface {
	List(context.Context, ListStateRequest) (ListStateResponse, error)
	UpdateLabels(context.Context, UpdateStateRequest) (State, error)
}

var (
	ErrInvalidKind   = errors.New("invalid_kind")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidNombre = errors.New("invalid_nombre")
	ErrNotFound      = errors.New("not_found")
)
