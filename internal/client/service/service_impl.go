package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/quetzalpay/cobros/internal/client/domain"
	"github.com/quetzalpay/cobros/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
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

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClienteRequest) (domain.Cliente, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return domain.Cliente{}, domain.ErrInvalidNombre
	}

	dpi := strings.TrimSpace(req.DPI)
	if dpi == "" {
		return domain.Cliente{}, domain.ErrInvalidDPI
	}

	now := time.Now().UTC()
	cliente := domain.Cliente{
		ID:                 s.genID.Generate(),
		Nombre:             nombre,
		DPI:                dpi,
		Email:              optional(req.Email),
		Telefono:           optional(req.Telefono),
		FechaCreacion:      now,
		FechaActualizacion: now,
	}

	if err := s.repo.Insert(ctx, s.db, &cliente); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Cliente{}, domain.ErrDPIExists
		}
		return domain.Cliente{}, err
	}

	s.log.Info("cliente created", zap.String("cliente_id", cliente.ID.String()))
	return cliente, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetClienteRequest) (domain.Cliente, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Cliente{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Cliente{}, err
	}
	if item == nil {
		return domain.Cliente{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
