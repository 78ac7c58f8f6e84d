package domain

import (
	"context"
	"errors"
	"time"
)

type CreateCobroRequest struct {
	ClienteID         int64
	Monto             float64
	Moneda            string
	ReferenciaExterna string
}

type ProcessCobroRequest struct {
	// ID is the raw path segment; it must parse to a valid cobro identifier.
	ID string
}

type ProcessCobroResponse struct {
	Cobro Cobro
	// AlreadyProcessed is true when the cobro was found in a terminal state
	// and no transition (nor audit entry) happened on this call.
	AlreadyProcessed bool
}

type ProcessLoteRequest struct {
	// CobrosIDs carries the raw list elements as decoded from JSON; entries
	// that do not coerce to a valid identifier are skipped.
	CobrosIDs []any
}

type ProcessLoteResponse struct {
	Total      int `json:"total"`
	Procesados int `json:"procesados"`
	Fallidos   int `json:"fallidos"`
}

type ListCobrosRequest struct {
	ClienteID string
	Estado    string
	Desde     *time.Time
	Hasta     *time.Time
}

type Service interface {
	Register(context.Context, CreateCobroRequest) (Cobro, error)
	Process(context.Context, ProcessCobroRequest) (ProcessCobroResponse, error)
	ProcessLote(context.Context, ProcessLoteRequest) (ProcessLoteResponse, error)
	ListByCliente(context.Context, ListCobrosRequest) ([]Cobro, error)
}

var (
	ErrInvalidClienteID = errors.New("invalid_cliente_id")
	ErrInvalidMonto     = errors.New("invalid_monto")
	ErrInvalidMoneda    = errors.New("invalid_moneda")
	ErrInvalidEstado    = errors.New("invalid_estado")
	ErrInvalidLote      = errors.New("invalid_lote")
	ErrNotFound         = errors.New("cobro_not_found")
)
