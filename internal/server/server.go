package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quetzalpay/cobros/internal/audit"
	"github.com/quetzalpay/cobros/internal/charge"
	chargedomain "github.com/quetzalpay/cobros/internal/charge/domain"
	"github.com/quetzalpay/cobros/internal/client"
	clientdomain "github.com/quetzalpay/cobros/internal/client/domain"
	"github.com/quetzalpay/cobros/internal/config"
	"github.com/quetzalpay/cobros/internal/observability"
	obslogger "github.com/quetzalpay/cobros/internal/observability/logger"
	obsmetrics "github.com/quetzalpay/cobros/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(NewEngine),
	audit.Module,
	client.Module,
	charge.Module,
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	log        *zap.Logger
	registry   *prometheus.Registry
	clienteSvc clientdomain.Service
	cobroSvc   chargedomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	Registry   *prometheus.Registry
	ClienteSvc clientdomain.Service
	CobroSvc   chargedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		log:        p.Log.Named("server"),
		registry:   p.Registry,
		clienteSvc: p.ClienteSvc,
		cobroSvc:   p.CobroSvc,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/", s.APIKeyRequired())

	api.GET("/health", s.Health)

	// -------- Clientes --------
	api.POST("/clientes", s.CreateCliente)
	api.GET("/clientes/:id/cobros", s.ListCobrosByCliente)

	// -------- Cobros --------
	api.POST("/cobros", s.RegistrarCobro)
	api.POST("/cobros/lotes/procesar", s.ProcesarLote)
	api.POST("/cobros/:id/procesar", s.ProcesarCobro)
}

func run(lc fx.Lifecycle, s *Server, cfg config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.Engine(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
