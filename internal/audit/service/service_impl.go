package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/quetzalpay/cobros/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, evento string, payload map[string]any) error {
	evento = strings.TrimSpace(evento)
	if evento == "" {
		return domain.ErrInvalidEvento
	}

	resumen := datatypes.JSONMap{}
	for key, value := range payload {
		if key == "" {
			continue
		}
		resumen[key] = value
	}

	entry := domain.Auditoria{
		ID:             s.genID.Generate(),
		Evento:         evento,
		ResumenPayload: resumen,
		UsuarioSistema: domain.ActorSistema,
		FechaCreacion:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		s.log.Warn("failed to write audit entry", zap.String("evento", evento), zap.Error(err))
		return err
	}
	return nil
}
