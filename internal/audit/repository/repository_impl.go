package repository

import (
	"context"

	"github.com/quetzalpay/cobros/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.Auditoria) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO auditoria (id, evento, resumen_payload, usuario_sistema, fecha_creacion)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Evento,
		entry.ResumenPayload,
		entry.UsuarioSistema,
		entry.FechaCreacion,
	).Error
}
