package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/config"
	"github.com/enotehq/enote/internal/migration"
	"github.com/enotehq/enote/internal/observability"
	"github.com/enotehq/enote/internal/server"
	"github.com/enotehq/enote/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
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
