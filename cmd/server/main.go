// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/nnmc-digital/projectboard/internal/adapters/http"
	"github.com/nnmc-digital/projectboard/internal/adapters/http/handlers"
	"github.com/nnmc-digital/projectboard/internal/adapters/http/middleware"

	"github.com/nnmc-digital/projectboard/internal/adapters/clients/acl"
	"github.com/nnmc-digital/projectboard/internal/adapters/store/memory"
	"github.com/nnmc-digital/projectboard/internal/adapters/store/sqlite"
	"github.com/nnmc-digital/projectboard/internal/app"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
	"github.com/nnmc-digital/projectboard/internal/platform/config"
	"github.com/nnmc-digital/projectboard/internal/platform/health"
	"github.com/nnmc-digital/projectboard/internal/platform/httpclient"
	"github.com/nnmc-digital/projectboard/internal/platform/logging"
	"github.com/nnmc-digital/projectboard/internal/platform/telemetry"
	"github.com/nnmc-digital/projectboard/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	stores, err := openStores(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer stores.close()

	logger.Info("storage ready", slog.String("driver", cfg.DB.Driver))

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)
	do.ProvideValue(injector, stores)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*httpclient.Client](injector))
	if stores.checker != nil {
		registry.Register(stores.checker)
	}

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

// storage bundles the persistence ports behind whichever adapter the
// configuration selects. checker is nil for adapters with nothing to probe.
type storage struct {
	projects ports.ProjectStore
	tasks    ports.TaskStore
	stages   ports.StageStore
	activity ports.ActivityStore
	checker  ports.HealthChecker
	close    func() error
}

// defaultStages mirrors the catalog the sqlite adapter seeds by migration,
// so the memory profile resolves the same stage placement.
func defaultStages() []stage.Stage {
	return []stage.Stage{
		{ID: 1, Order: 1, MinPercent: 0, MaxPercent: 10, Name: "Initiation", Color: "#64748B"},
		{ID: 2, Order: 2, MinPercent: 10, MaxPercent: 20, Name: "Planning", Color: "#0EA5E9"},
		{ID: 3, Order: 3, MinPercent: 20, MaxPercent: 70, Name: "Execution", Color: "#F97316"},
		{ID: 4, Order: 4, MinPercent: 70, MaxPercent: 90, Name: "Monitoring", Color: "#EAB308"},
		{ID: 5, Order: 5, MinPercent: 90, MaxPercent: 101, Name: "Completion", Color: "#22C55E"},
	}
}

func openStores(cfg *config.Config) (*storage, error) {
	switch cfg.DB.Driver {
	case "sqlite":
		st, err := sqlite.Open(cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		return &storage{
			projects: st.Projects,
			tasks:    st.Tasks,
			stages:   st.Stages,
			activity: st.Activity,
			checker:  st,
			close:    st.Close,
		}, nil
	case "memory":
		st := memory.New()
		st.SeedStages(defaultStages())
		return &storage{
			projects: st.Projects,
			tasks:    st.Tasks,
			stages:   st.Stages,
			activity: st.Activity,
			close:    func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}
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

	metrics, err := telemetry.NewMetrics(mp)
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
	// Outbound identity-provider client.
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Identity, "identity-provider", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.IdentityClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewIdentityClient(client, logger), nil
	})

	// Lifecycle components.
	do.Provide(injector, func(_ do.Injector) (*app.Policy, error) {
		return app.NewPolicy(), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.StageResolver, error) {
		stores := do.MustInvoke[*storage](i)
		return app.NewStageResolver(stores.stages), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.DateValidator, error) {
		stores := do.MustInvoke[*storage](i)
		return app.NewDateValidator(stores.projects, stores.tasks), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ActivityRecorder, error) {
		stores := do.MustInvoke[*storage](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewActivityRecorder(stores.activity, logger, metrics), nil
	})

	// Application services.
	do.Provide(injector, func(i do.Injector) (ports.ProjectService, error) {
		stores := do.MustInvoke[*storage](i)
		return app.NewProjectService(
			stores.projects,
			stores.tasks,
			do.MustInvoke[*app.StageResolver](i),
			do.MustInvoke[*app.ActivityRecorder](i),
			do.MustInvoke[*app.Policy](i),
			logger,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskService, error) {
		stores := do.MustInvoke[*storage](i)
		return app.NewTaskService(
			stores.tasks,
			stores.projects,
			do.MustInvoke[*app.DateValidator](i),
			do.MustInvoke[*app.ActivityRecorder](i),
			do.MustInvoke[*app.Policy](i),
			logger,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ActivityService, error) {
		stores := do.MustInvoke[*storage](i)
		return app.NewActivityService(stores.activity, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	// Inbound HTTP handlers.
	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		return handlers.NewProjectHandler(do.MustInvoke[ports.ProjectService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		return handlers.NewTaskHandler(do.MustInvoke[ports.TaskService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ActivityHandler, error) {
		return handlers.NewActivityHandler(do.MustInvoke[ports.ActivityService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.StageHandler, error) {
		stores := do.MustInvoke[*storage](i)
		return handlers.NewStageHandler(stores.stages), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		identityClient := do.MustInvoke[ports.IdentityClient](i)

		return adapthttp.NewRouter(
			do.MustInvoke[*handlers.ProjectHandler](i),
			do.MustInvoke[*handlers.TaskHandler](i),
			do.MustInvoke[*handlers.ActivityHandler](i),
			do.MustInvoke[*handlers.StageHandler](i),
			do.MustInvoke[*handlers.HealthHandler](i),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Auth(cfg.Auth.JWTSecret, identityClient, logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
