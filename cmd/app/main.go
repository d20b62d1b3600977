package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/migrations"
	"orders/internal/pkg/logger"
	"orders/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName     = "orders"
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	configs, err := cmd.LoadConfig(".env")
	log := configs.Logger(serviceName, os.Stdout)
	if err == nil {
		err = run(ctx, configs, log)
	}
	stop()

	if err != nil {
		log.Error(context.Background(), "service stopped", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, log *logger.Logger) error {
	shutdownTracing, err := telemetry.InitTracerProvider(ctx, configs.OTelExporterEndpoint, serviceName, serviceVersion)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn(context.Background(), "tracer shutdown failed", err)
		}
	}()

	if configs.DBAutoMigrate {
		if err = postgres.Migrate(ctx, configs.PostgresURL(), migrations.CommandUp); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info(ctx, "migrations applied")
	}

	gormDB, err := postgres.Open(ctx, configs.DSN(), configs.PoolOptions(), log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn(context.Background(), "closing adapters failed", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs.HTTPPort, log)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, log *logger.Logger) error {
	e, err := app.CreateHTTPHandler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", port),
		Handler:           otelhttp.NewHandler(e, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.InfoFields(ctx, "http server started", map[string]any{"port": port})
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
