package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/quetzalpay/cobros/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cliente *domain.Cliente) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO clientes (id, nombre, dpi, email, telefono, fecha_creacion, fecha_actualizacion)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cliente.ID,
		cliente.Nombre,
		cliente.DPI,
		cliente.Email,
		cliente.Telefono,
		cliente.FechaCreacion,
		cliente.FechaActualizacion,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Cliente, error) {
	var cliente domain.Cliente
	err := db.WithContext(ctx).Raw(
		`SELECT id, nombre, dpi, email, telefono, fecha_creacion, fecha_actualizacion
		 FROM clientes WHERE id = ?`,
		id,
	).Scan(&cliente).Error
	if err != nil {
		return nil, err
	}
	if cliente.ID == 0 {
		return nil, nil
	}
	return &cliente, nil
}
