// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/clients/payout"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/custody"
	adapthttp "github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/storage/redisstore"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/storage/sqlite"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/app"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/clock"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/config"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/health"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/httpclient"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/logging"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/telemetry"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second

	payoutServiceName = "payout-rail"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// An optional .env file seeds APP_* variables for local runs.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	logger.Debug("configuration loaded", slog.String("profile", profile), slog.Any("config", cfg))

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	defer closeResources(injector, cfg, logger)

	// Register health checkers after the graph is wired.
	registerHealthChecks(injector, cfg)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (ports.Clock, error) {
		return clock.System{}, nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.ProjectStore, error) {
		switch cfg.Storage.Driver {
		case config.StorageSQLite:
			store, err := sqlite.Open(cfg.Storage.SQLite.Path)
			if err != nil {
				return nil, fmt.Errorf("opening sqlite store: %w", err)
			}
			return store, nil
		default:
			return memory.NewStore(), nil
		}
	})

	do.Provide(injector, func(i do.Injector) (ports.PayoutClient, error) {
		if cfg.Payout.Driver != config.PayoutHTTP {
			return custody.NewVault(), nil
		}
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		client := httpclient.New(&cfg.Payout.Client, payoutServiceName, metrics, logger)
		return payout.NewClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.IdempotencyStore, error) {
		if cfg.Idempotency.Driver == config.IdempotencyRedis {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.Idempotency.Redis.Addr,
				Password: cfg.Idempotency.Redis.Password,
				DB:       cfg.Idempotency.Redis.DB,
			})
			return redisstore.NewIdempotencyStore(rdb), nil
		}
		return memory.NewIdempotencyStore(do.MustInvoke[ports.Clock](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CrowdfundingService, error) {
		return app.NewCrowdfundingService(
			do.MustInvoke[ports.ProjectStore](i),
			do.MustInvoke[ports.PayoutClient](i),
			do.MustInvoke[ports.Clock](i),
			do.MustInvoke[*telemetry.Metrics](i),
			logger,
		), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		svc := do.MustInvoke[ports.CrowdfundingService](i)
		return handlers.NewProjectHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		projH := do.MustInvoke[*handlers.ProjectHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		var mutating func(nethttp.Handler) nethttp.Handler
		if cfg.Idempotency.Enabled {
			store := do.MustInvoke[ports.IdempotencyStore](i)
			mutating = middleware.Idempotency(store, cfg.Idempotency.TTL)
		}

		return adapthttp.NewRouter(projH, healthH, mutating,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.Caller(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// registerHealthChecks adds every resolved adapter that can report its health.
func registerHealthChecks(injector *do.RootScope, cfg *config.Config) {
	registry := do.MustInvoke[ports.HealthRegistry](injector)

	candidates := []any{
		do.MustInvoke[ports.ProjectStore](injector),
		do.MustInvoke[ports.PayoutClient](injector),
	}
	if cfg.Idempotency.Enabled {
		candidates = append(candidates, do.MustInvoke[ports.IdempotencyStore](injector))
	}

	for _, c := range candidates {
		if checker, ok := c.(ports.HealthChecker); ok {
			registry.Register(checker)
		}
	}
}

// closeResources releases adapters that hold connections.
func closeResources(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	closers := []any{do.MustInvoke[ports.ProjectStore](injector)}
	if cfg.Idempotency.Enabled {
		closers = append(closers, do.MustInvoke[ports.IdempotencyStore](injector))
	}

	for _, c := range closers {
		closer, ok := c.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			logger.Error("closing resource", slog.Any("error", err))
		}
	}
}
