package charge

import (
	"github.com/quetzalpay/cobros/internal/charge/repository"
	"github.com/quetzalpay/cobros/internal/charge/service"
	"go.uber.org/fx"
)

var Module = fx.Module("charge.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
