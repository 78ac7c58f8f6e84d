package domain

import (
	"context"
	"errors"
)

type CreateClienteRequest struct {
	Nombre   string
	DPI      string
	Email    string
	Telefono string
}

type GetClienteRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateClienteRequest) (Cliente, error)
	GetByID(context.Context, GetClienteRequest) (Cliente, error)
}

var (
	ErrInvalidNombre = errors.New("invalid_nombre")
	ErrInvalidDPI    = errors.New("invalid_dpi")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDPIExists     = errors.New("dpi_exists")
	ErrNotFound      = errors.New("cliente_not_found")
)
