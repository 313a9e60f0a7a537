package main

import (
	"github.com/spf13/cobra"

	"github.com/Kerhoff/todo-api/internal/config"
	"github.com/Kerhoff/todo-api/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.MigrationsPath
			}

			l := logger.New(cfg.LogLevel)
			db, err := config.NewDatabase(cfg.DatabaseURL, l)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Verify(cmd.Context()); err != nil {
				return err
			}
			return db.Migrate(path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migrations directory (default $MIGRATIONS_PATH)")
	return cmd
}
