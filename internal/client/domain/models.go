package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Cliente struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	Nombre             string       `gorm:"not null" json:"nombre"`
	DPI                string       `gorm:"column:dpi;not null;uniqueIndex" json:"dpi"`
	Email              *string      `json:"email"`
	Telefono           *string      `json:"telefono"`
	FechaCreacion      time.Time    `gorm:"column:fecha_creacion;not null" json:"fechaCreacion"`
	FechaActualizacion time.Time    `gorm:"column:fecha_actualizacion;not null" json:"fechaActualizacion"`
}

func (Cliente) TableName() string {
	return "clientes"
}
