package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Estado is the closed set of charge states. A cobro starts PENDIENTE and
// moves exactly once to PROCESADO or FALLIDO.
type Estado string

const (
	EstadoPendiente Estado = "PENDIENTE"
	EstadoProcesado Estado = "PROCESADO"
	EstadoFallido   Estado = "FALLIDO"
)

func (e Estado) Valid() bool {
	switch e {
	case EstadoPendiente, EstadoProcesado, EstadoFallido:
		return true
	default:
		return false
	}
}

// UmbralMonto is the processing threshold: amounts above it fail.
const UmbralMonto = 1000.0

// EstadoPorMonto applies the threshold rule. It is the single transition rule,
// shared by individual and batch processing.
func EstadoPorMonto(monto float64) Estado {
	if monto <= UmbralMonto {
		return EstadoProcesado
	}
	return EstadoFallido
}

// Audit event names written by the processing operations.
const (
	EventoProcesamiento     = "PROCESAMIENTO_COBRO"
	EventoProcesamientoLote = "PROCESAMIENTO_COBRO_LOTE"
)

type Cobro struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	ClienteID         snowflake.ID `gorm:"column:cliente_id;not null;index" json:"clienteId"`
	Monto             float64      `gorm:"not null" json:"monto"`
	Moneda            string       `gorm:"not null" json:"moneda"`
	ReferenciaExterna *string      `gorm:"column:referencia_externa" json:"referenciaExterna"`
	Estado            Estado       `gorm:"not null;default:PENDIENTE" json:"estado"`
	FechaCreacion     time.Time    `gorm:"column:fecha_creacion;not null" json:"fechaCreacion"`
	FechaProceso      *time.Time   `gorm:"column:fecha_proceso" json:"fechaProceso"`
}

func (Cobro) TableName() string {
	return "cobros"
}
