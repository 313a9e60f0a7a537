package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Kerhoff/todo-api/internal/config"
	"github.com/Kerhoff/todo-api/internal/repository/postgres"
	"github.com/Kerhoff/todo-api/internal/seed"
	"github.com/Kerhoff/todo-api/pkg/logger"
)

func newSeedCmd() *cobra.Command {
	var (
		opts seed.Options
		file string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(file)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
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
			_, err = seed.Run(cmd.Context(), postgres.NewTodoRepository(db.DB), l, ds, opts)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.Fresh, "fresh", false, "delete every todo before seeding")
	cmd.Flags().StringVar(&file, "file", "", "TOML dataset to insert instead of the built-in one")
	return cmd
}

func loadDataset(file string) (seed.Dataset, error) {
	if file == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return seed.Dataset{}, err
	}
	return seed.Parse(data)
}
