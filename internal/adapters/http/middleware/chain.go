package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/go-result/internal/platform/telemetry"
)

// Chain composes middlewares so the first argument is outermost:
// Chain(a, b)(h) is a(b(h)).
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}
}

// Stack is the service's inbound pipeline in the order documented on the
// package. metrics may be nil.
func Stack(logger *slog.Logger, metrics *telemetry.Metrics, requestTimeout time.Duration) func(http.Handler) http.Handler {
	return Chain(
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(metrics),
		Logging(logger),
		Timeout(requestTimeout),
	)
}
