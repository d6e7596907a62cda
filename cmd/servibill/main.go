package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/servibill/servibill/internal/clock"
	"github.com/servibill/servibill/internal/config"
	"github.com/servibill/servibill/internal/logger"
	"github.com/servibill/servibill/internal/migration"
	"github.com/servibill/servibill/internal/server"
	"github.com/servibill/servibill/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
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
