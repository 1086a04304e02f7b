// Package health provides a thread-safe registry of dependency health
// checks. Each check is reported as a result so the readiness endpoint can
// render failures the same way as any other fault.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/fault"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// CodeUnhealthy marks a failed dependency check.
const CodeUnhealthy = "DEPENDENCY_UNHEALTHY"

// defaultCheckTimeout bounds a single check when none is configured.
const defaultCheckTimeout = 2 * time.Second

var _ ports.HealthRegistry = (*Registry)(nil)

// Registry implements [ports.HealthRegistry]. Checkers registered at
// startup run concurrently on every readiness probe.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
	timeout  time.Duration
}

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds each individual check. Non-positive values keep
// the default.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates an empty health check registry.
func New(opts ...Option) *Registry {
	r := &Registry{timeout: defaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every registered check concurrently and returns the
// outcomes keyed by checker name. When two checkers share a name, the one
// registered last wins.
func (r *Registry) CheckAll(ctx context.Context) map[string]result.Result[struct{}] {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	outcomes := make([]result.Result[struct{}], len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() {
			outcomes[i] = r.check(ctx, c)
		})
	}
	wg.Wait()

	results := make(map[string]result.Result[struct{}], len(checkers))
	for i, c := range checkers {
		results[c.Name()] = outcomes[i]
	}
	return results
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) result.Result[struct{}] {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := c.HealthCheck(ctx); err != nil {
		return result.FromError[struct{}](fault.Unexpected(
			fault.WithCode(CodeUnhealthy),
			fault.WithDescription(err.Error()),
		))
	}
	return result.Success(struct{}{})
}
