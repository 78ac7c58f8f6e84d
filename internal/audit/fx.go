package audit

import (
	"github.com/quetzalpay/cobros/internal/audit/repository"
	"github.com/quetzalpay/cobros/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
