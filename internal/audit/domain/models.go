package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ActorSistema is recorded when no human actor is associated with an event.
const ActorSistema = "system"

type Auditoria struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	Evento         string            `gorm:"not null" json:"evento"`
	ResumenPayload datatypes.JSONMap `gorm:"column:resumen_payload;type:jsonb;not null;default:'{}'" json:"resumenPayload"`
	UsuarioSistema string            `gorm:"column:usuario_sistema;not null" json:"usuarioSistema"`
	FechaCreacion  time.Time         `gorm:"column:fecha_creacion;not null" json:"fechaCreacion"`
}

func (Auditoria) TableName() string {
	return "auditoria"
}
