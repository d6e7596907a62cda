package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Nombre    string `json:"nombre"`
	NIF       string `json:"nif"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

type UpdateClientRequest struct {
	ID        string `json:"-"`
	Nombre    string `json:"nombre"`
	NIF       string `json:"nif"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

type ListClientResponse struct {
	Clients []Client `json:"clientes"`
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	List(context.Context) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidNombre = errors.New("invalid_nombre")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrNotFound      = errors.New("not_found")
)
