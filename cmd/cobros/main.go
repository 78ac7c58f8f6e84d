package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/quetzalpay/cobros/internal/config"
	"github.com/quetzalpay/cobros/internal/logger"
	"github.com/quetzalpay/cobros/internal/migration"
	"github.com/quetzalpay/cobros/internal/server"
	"github.com/quetzalpay/cobros/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
