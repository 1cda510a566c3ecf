package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	pg "receivables/internal/adapters/postgres"
	"receivables/internal/config"
)

var cmdMigrate = &cli.Command{
	Name:  "migrate",
	Usage: "Apply database migrations",
	Action: func(cctx *cli.Context) error {
		cfg, err := config.Load()
		if err != nil && !errors.Is(err, config.ErrNoDatabase) {
			return err
		}
		if cfg.DatabaseURL == "" {
			return config.ErrNoDatabase
		}
		db, err := pg.Connect(cctx.Context, cfg.DatabaseURL, 2)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate(cctx.Context)
	},
}
