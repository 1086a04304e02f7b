package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-result/internal/adapters/clients/acl"
	adapthttp "github.com/jsamuelsen11/go-result/internal/adapters/http"
	"github.com/jsamuelsen11/go-result/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-result/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-result/internal/adapters/store/memory"
	"github.com/jsamuelsen11/go-result/internal/app"
	"github.com/jsamuelsen11/go-result/internal/platform/config"
	"github.com/jsamuelsen11/go-result/internal/platform/health"
	"github.com/jsamuelsen11/go-result/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-result/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-result/internal/ports"
)

const todoAPIName = "todo-api"

// checkedStore is a TodoStore that can also report its own health.
type checkedStore interface {
	ports.TodoStore
	ports.HealthChecker
}

// registerDependencies provides every component of the service. The caller
// must already have provided *config.Config, *slog.Logger and
// *telemetry.Metrics; the metrics pointer is nil when telemetry is disabled.
func registerDependencies(injector *do.RootScope) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, todoAPIName,
			httpclient.WithMetrics(metrics),
			httpclient.WithLogger(logger),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (checkedStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		switch cfg.Store.Backend {
		case config.StoreBackendMemory:
			return memory.New(), nil
		case config.StoreBackendRemote:
			return acl.NewTodoClient(do.MustInvoke[*httpclient.Client](i), logger), nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
		}
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		store := do.MustInvoke[checkedStore](i)
		opts := []app.Option{app.WithBulkMaxWorkers(cfg.Store.BulkMaxWorkers)}
		if metrics := do.MustInvoke[*telemetry.Metrics](i); metrics != nil {
			opts = append(opts, app.WithOutcomeCounter(metrics.ResultOutcomeTotal))
		}
		return app.NewTodoService(store, logger, opts...), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.HealthRegistry, error) {
		registry := health.New()
		registry.Register(do.MustInvoke[checkedStore](i))
		return registry, nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		return handlers.NewTodoHandler(do.MustInvoke[ports.TodoService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return adapthttp.NewRouter(
			do.MustInvoke[*handlers.TodoHandler](i),
			do.MustInvoke[*handlers.HealthHandler](i),
			middleware.Stack(logger, do.MustInvoke[*telemetry.Metrics](i), cfg.Server.RequestTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[nethttp.Handler](i), logger), nil
	})
}
