package ports

import (
	"context"

	"github.com/jsamuelsen11/go-result/pkg/result"
)

// HealthChecker is a dependency the readiness probe asks about, such as the
// todo store or the downstream todo API.
type HealthChecker interface {
	// Name keys the checker in readiness output, e.g. "memory-store".
	Name() string
	// HealthCheck returns nil while the dependency can serve traffic. It
	// must give up when ctx does.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs every registered checker for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)
	// CheckAll reports one Result per checker name; a failed check carries
	// a single Unexpected fault describing it.
	CheckAll(ctx context.Context) map[string]result.Result[struct{}]
}
