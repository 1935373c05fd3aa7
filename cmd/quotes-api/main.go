// Package main is the entry point for the Quotes API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jsamuelsen/quoteshare/internal/adapters/auth"
	"github.com/jsamuelsen/quoteshare/internal/adapters/http"
	"github.com/jsamuelsen/quoteshare/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteshare/internal/adapters/store"
	"github.com/jsamuelsen/quoteshare/internal/app"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
	"github.com/jsamuelsen/quoteshare/internal/platform/telemetry"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// repository is a quote store that can also report its health.
type repository interface {
	ports.QuoteRepository
	ports.HealthChecker
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting quotes api",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		StoreDriver:  cfg.Store.Driver,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	repo, closeRepo, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	healthRegistry := ports.NewHealthRegistry().WithCheckTimeout(cfg.Server.RequestTimeout)
	if err := healthRegistry.Register(repo); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: repo,
		Logger:     logger,
	})

	server := http.New(&cfg.Server, logger)

	var serviceName string
	if cfg.Telemetry.Enabled {
		serviceName = cfg.Telemetry.ServiceName
	}

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   serviceName,
		Verifier:      auth.NewVerifier(cfg.Auth),
		CORS:          cfg.CORS,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime)),
		QuoteHandler:  handlers.NewQuoteHandler(quoteService),
		Timeout:       cfg.Server.RequestTimeout,
	})

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// openStore builds the configured repository. The returned func releases it.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (repository, func(), error) {
	switch cfg.Driver {
	case config.StoreDriverPostgres:
		pg, err := store.NewPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}

		return pg, pg.Close, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}
