package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	ClienteID snowflake.ID
	Estado    Estado
	Desde     *time.Time
	Hasta     *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cobro *Cobro) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Cobro, error)
	// UpdateEstadoIfPendiente transitions the cobro out of PENDIENTE and
	// reports whether this call won the transition.
	UpdateEstadoIfPendiente(ctx context.Context, db *gorm.DB, id snowflake.ID, estado Estado, fechaProceso time.Time) (bool, error)
	ListByCliente(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Cobro, error)
}
