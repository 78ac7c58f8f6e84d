package client

import (
	"github.com/quetzalpay/cobros/internal/client/repository"
	"github.com/quetzalpay/cobros/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
