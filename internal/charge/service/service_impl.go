package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/quetzalpay/cobros/internal/audit/domain"
	"github.com/quetzalpay/cobros/internal/charge/domain"
	clientdomain "github.com/quetzalpay/cobros/internal/client/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	ClienteSvc clientdomain.Service
	AuditSvc   auditdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	clienteSvc clientdomain.Service
	auditSvc   auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("charge.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		clienteSvc: p.ClienteSvc,
		auditSvc:   p.AuditSvc,
	}
}

func (s *Service) Register(ctx context.Context, req domain.CreateCobroRequest) (domain.Cobro, error) {
	if req.ClienteID <= 0 {
		return domain.Cobro{}, domain.ErrInvalidClienteID
	}
	if req.Monto <= 0 {
		return domain.Cobro{}, domain.ErrInvalidMonto
	}
	moneda := strings.TrimSpace(req.Moneda)
	if moneda == "" {
		return domain.Cobro{}, domain.ErrInvalidMoneda
	}

	cliente, err := s.clienteSvc.GetByID(ctx, clientdomain.GetClienteRequest{
		ID: strconv.FormatInt(req.ClienteID, 10),
	})
	if err != nil {
		return domain.Cobro{}, err
	}

	cobro := domain.Cobro{
		ID:                s.genID.Generate(),
		ClienteID:         cliente.ID,
		Monto:             req.Monto,
		Moneda:            moneda,
		ReferenciaExterna: optional(req.ReferenciaExterna),
		Estado:            domain.EstadoPendiente,
		FechaCreacion:     time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &cobro); err != nil {
		return domain.Cobro{}, err
	}

	s.log.Info("cobro registered",
		zap.String("cobro_id", cobro.ID.String()),
		zap.String("cliente_id", cliente.ID.String()),
		zap.Float64("monto", cobro.Monto),
	)
	return cobro, nil
}

func (s *Service) Process(ctx context.Context, req domain.ProcessCobroRequest) (domain.ProcessCobroResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.ProcessCobroResponse{}, domain.ErrNotFound
	}

	cobro, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ProcessCobroResponse{}, err
	}
	if cobro == nil {
		return domain.ProcessCobroResponse{}, domain.ErrNotFound
	}

	if cobro.Estado != domain.EstadoPendiente {
		return domain.ProcessCobroResponse{Cobro: *cobro, AlreadyProcessed: true}, nil
	}

	nuevo := domain.EstadoPorMonto(cobro.Monto)
	now := time.Now().UTC()

	won, err := s.repo.UpdateEstadoIfPendiente(ctx, s.db, id, nuevo, now)
	if err != nil {
		return domain.ProcessCobroResponse{}, err
	}
	if !won {
		// A concurrent call settled the cobro first; report its final state.
		settled, err := s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			return domain.ProcessCobroResponse{}, err
		}
		if settled == nil {
			return domain.ProcessCobroResponse{}, domain.ErrNotFound
		}
		return domain.ProcessCobroResponse{Cobro: *settled, AlreadyProcessed: true}, nil
	}

	_ = s.auditSvc.Record(ctx, domain.EventoProcesamiento, map[string]any{
		"cobroId": cobro.ID.String(),
		"estado":  string(nuevo),
	})

	s.log.Info("cobro processed",
		zap.String("cobro_id", cobro.ID.String()),
		zap.String("estado", string(nuevo)),
	)

	cobro.Estado = nuevo
	cobro.FechaProceso = &now
	return domain.ProcessCobroResponse{Cobro: *cobro}, nil
}

func (s *Service) ProcessLote(ctx context.Context, req domain.ProcessLoteRequest) (domain.ProcessLoteResponse, error) {
	if len(req.CobrosIDs) == 0 {
		return domain.ProcessLoteResponse{}, domain.ErrInvalidLote
	}

	var resp domain.ProcessLoteResponse
	for _, raw := range req.CobrosIDs {
		id, ok := coerceID(raw)
		if !ok {
			s.log.Debug("cobro id discarded", zap.Any("raw", raw))
			continue
		}

		cobro, err := s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			return domain.ProcessLoteResponse{}, err
		}
		if cobro == nil {
			s.log.Debug("cobro not found in lote", zap.String("cobro_id", id.String()))
			continue
		}

		resp.Total++

		if cobro.Estado != domain.EstadoPendiente {
			tally(&resp, cobro.Estado)
			continue
		}

		nuevo := domain.EstadoPorMonto(cobro.Monto)
		now := time.Now().UTC()

		won, err := s.repo.UpdateEstadoIfPendiente(ctx, s.db, id, nuevo, now)
		if err != nil {
			return domain.ProcessLoteResponse{}, err
		}
		if !won {
			settled, err := s.repo.FindByID(ctx, s.db, id)
			if err != nil {
				return domain.ProcessLoteResponse{}, err
			}
			if settled != nil {
				tally(&resp, settled.Estado)
			}
			continue
		}

		_ = s.auditSvc.Record(ctx, domain.EventoProcesamientoLote, map[string]any{
			"cobroId": cobro.ID.String(),
			"estado":  string(nuevo),
		})

		tally(&resp, nuevo)
	}

	s.log.Info("lote processed",
		zap.Int("total", resp.Total),
		zap.Int("procesados", resp.Procesados),
		zap.Int("fallidos", resp.Fallidos),
	)
	return resp, nil
}

func (s *Service) ListByCliente(ctx context.Context, req domain.ListCobrosRequest) ([]domain.Cobro, error) {
	cliente, err := s.clienteSvc.GetByID(ctx, clientdomain.GetClienteRequest{ID: req.ClienteID})
	if err != nil {
		return nil, err
	}

	estado := domain.Estado(strings.TrimSpace(req.Estado))
	if estado != "" && !estado.Valid() {
		return nil, domain.ErrInvalidEstado
	}

	items, err := s.repo.ListByCliente(ctx, s.db, domain.ListFilter{
		ClienteID: cliente.ID,
		Estado:    estado,
		Desde:     req.Desde,
		Hasta:     req.Hasta,
	})
	if err != nil {
		return nil, err
	}

	cobros := make([]domain.Cobro, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		cobros = append(cobros, *item)
	}
	return cobros, nil
}

func tally(resp *domain.ProcessLoteResponse, estado domain.Estado) {
	switch estado {
	case domain.EstadoProcesado:
		resp.Procesados++
	case domain.EstadoFallido:
		resp.Fallidos++
	case domain.EstadoPendiente:
		// still pending, counts toward total only
	}
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// coerceID accepts the JSON shapes a lote entry may arrive in: numbers and
// numeric strings. Anything else, non-integral or non-positive, is skipped.
// json.Number is parsed from its literal digits, so ids beyond float64's
// exact-integer range stay intact.
func coerceID(raw any) (snowflake.ID, bool) {
	switch v := raw.(type) {
	case json.Number:
		id, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return snowflake.ID(id), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		id := int64(v)
		if id <= 0 {
			return 0, false
		}
		return snowflake.ID(id), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return snowflake.ID(id), true
	default:
		return 0, false
	}
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
