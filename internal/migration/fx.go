package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/servibill/servibill/internal/config"
	"github.com/servibill/servibill/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if err := Run(conn); err != nil {
			return err
		}

		if cfg.SeedReferenceData {
			return seed.EnsureStates(conn, node)
		}
		return nil
	}),
)
