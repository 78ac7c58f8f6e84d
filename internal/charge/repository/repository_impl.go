package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/quetzalpay/cobros/internal/charge/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cobro *domain.Cobro) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO cobros (id, cliente_id, monto, moneda, referencia_externa, estado, fecha_creacion, fecha_proceso)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cobro.ID,
		cobro.ClienteID,
		cobro.Monto,
		cobro.Moneda,
		cobro.ReferenciaExterna,
		cobro.Estado,
		cobro.FechaCreacion,
		cobro.FechaProceso,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Cobro, error) {
	var cobro domain.Cobro
	err := db.WithContext(ctx).Raw(
		`SELECT id, cliente_id, monto, moneda, referencia_externa, estado, fecha_creacion, fecha_proceso
		 FROM cobros WHERE id = ?`,
		id,
	).Scan(&cobro).Error
	if err != nil {
		return nil, err
	}
	if cobro.ID == 0 {
		return nil, nil
	}
	return &cobro, nil
}

func (r *repo) UpdateEstadoIfPendiente(ctx context.Context, db *gorm.DB, id snowflake.ID, estado domain.Estado, fechaProceso time.Time) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE cobros SET estado = ?, fecha_proceso = ? WHERE id = ? AND estado = ?`,
		estado,
		fechaProceso,
		id,
		domain.EstadoPendiente,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) ListByCliente(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Cobro, error) {
	var cobros []*domain.Cobro
	stmt := db.WithContext(ctx).
		Model(&domain.Cobro{}).
		Where("cliente_id = ?", filter.ClienteID)
	if filter.Estado != "" {
		stmt = stmt.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != nil {
		stmt = stmt.Where("fecha_creacion >= ?", filter.Desde.UTC())
	}
	if filter.Hasta != nil {
		stmt = stmt.Where("fecha_creacion <= ?", filter.Hasta.UTC())
	}
	err := stmt.
		Order("fecha_creacion desc, id desc").
		Find(&cobros).Error
	if err != nil {
		return nil, err
	}
	return cobros, nil
}
