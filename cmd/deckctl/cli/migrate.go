// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/manabase/internal/platform/config"
	"github.com/taibuivan/manabase/internal/platform/logging"
	"github.com/taibuivan/manabase/internal/platform/migration"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <up|down>",
		Short: "Apply or roll back database migrations",
		Long:  "Apply all pending migrations (up) or roll back every applied migration (down).",
		Args:  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),

		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			log, closer := logging.New(cfg.Log, cfg.Debug)
			defer closer.Close()

			if args[0] == "down" {
				return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, log)
			}
			return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
		},
	}

	return cmd
}
