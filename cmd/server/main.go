// Package main runs the todo service. APP_PROFILE picks the configuration
// profile; the process serves until SIGINT or SIGTERM and then drains.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/go-result/internal/adapters/http"
	"github.com/jsamuelsen11/go-result/internal/platform/config"
	"github.com/jsamuelsen11/go-result/internal/platform/logging"
	"github.com/jsamuelsen11/go-result/internal/platform/telemetry"
)

const (
	drainTimeout = 15 * time.Second
	flushTimeout = 5 * time.Second
)

var errNoProfile = errors.New("APP_PROFILE must be set (local, dev, qa or prod)")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "todo-service:", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errNoProfile
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	logger.Info("configuration loaded",
		slog.String("profile", profile),
		slog.String("store", cfg.Store.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, flush, err := startTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := flush(flushCtx); err != nil {
			logger.Error("telemetry flush failed", slog.Any("error", err))
		}
	}()

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, metrics)
	registerDependencies(injector)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("wiring server: %w", err)
	}

	return serve(ctx, server, logger)
}

// serve runs server until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, server *adapthttp.Server, logger *slog.Logger) error {
	failed := make(chan error, 1)
	go func() { failed <- server.Start() }()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
		logger.Info("shutdown requested")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("server did not drain cleanly", slog.Any("error", err))
	}
	<-failed

	logger.Info("shutdown complete")
	return nil
}

// startTelemetry installs the global trace and metric providers. With
// telemetry disabled it returns nil metrics and a no-op flush; every
// consumer of *telemetry.Metrics treats nil as "do not record".
func startTelemetry(ctx context.Context, cfg config.TelemetryConfig) (*telemetry.Metrics, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return nil, noop, nil
	}

	tp, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, noop, err
	}
	mp, err := telemetry.InitMeter(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, noop, errors.Join(err, tp.Shutdown(ctx))
	}
	flush := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.ServiceName)
	if err != nil {
		return nil, noop, errors.Join(err, flush(ctx))
	}
	return metrics, flush, nil
}
