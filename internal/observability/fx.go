package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/quetzalpay/cobros/internal/observability/metrics"
	"go.uber.org/fx"
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	return reg
}

func newHTTPMetrics(reg *prometheus.Registry) *metrics.HTTPMetrics {
	return metrics.NewHTTPMetrics(reg)
}

// Module wires the prometheus registry and HTTP instruments.
var Module = fx.Module("observability",
	fx.Provide(newRegistry),
	fx.Provide(newHTTPMetrics),
)
