package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kerhoff/todo-api/internal/api"
	"github.com/Kerhoff/todo-api/internal/config"
	"github.com/Kerhoff/todo-api/internal/metrics"
	"github.com/Kerhoff/todo-api/internal/repository/postgres"
	"github.com/Kerhoff/todo-api/internal/service"
	"github.com/Kerhoff/todo-api/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	l := logger.New(cfg.LogLevel)
	l.Info("Starting todo API...")

	db, err := config.NewDatabase(cfg.DatabaseURL, l)
	if err != nil {
		return err
	}
	defer db.Close()

	// Without AUTO_MIGRATE the API still starts without a database so
	// /health can report it. Migrations need the database up front.
	if cfg.AutoMigrate {
		if err := db.Verify(parent); err != nil {
			return fmt.Errorf("cannot run migrations: %w", err)
		}
		if err := db.Migrate(cfg.MigrationsPath); err != nil {
			return err
		}
	} else if err := db.Verify(parent); err != nil {
		l.WithError(err).Warn("Database is not reachable yet")
	}

	m := metrics.New()
	svc := service.New(db, l, m, postgres.NewTodoRepository(db.DB))
	apiServer := api.NewServer(svc, l, m)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}}
	if cfg.PrometheusPort != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", m.Handler())
		servers = append(servers, &http.Server{Addr: ":" + cfg.PrometheusPort, Handler: mux})
	}

	errc := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			l.Infof("HTTP server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		l.Info("Received shutdown signal...")
	case err := <-errc:
		l.WithError(err).Error("HTTP server error")
		shutdown(servers, cfg, l)
		return err
	}

	shutdown(servers, cfg, l)
	l.Info("Todo API stopped")
	return nil
}

func shutdown(servers []*http.Server, cfg *config.Config, l *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			l.WithError(err).Errorf("Failed to shut down %s", srv.Addr)
		}
	}
}
