// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/jsamuelsen11/go-result/internal/app/fanout"
	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/internal/platform/logging"
	"github.com/jsamuelsen11/go-result/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

const defaultBulkMaxWorkers = 4

// TodoService implements ports.TodoService on top of a ports.TodoStore. It
// validates input, logs failures and records one outcome metric per
// operation, but contains no storage logic.
type TodoService struct {
	store      ports.TodoStore
	logger     *slog.Logger
	outcomes   metric.Int64Counter
	maxWorkers int
}

// Option configures a TodoService.
type Option func(*TodoService)

// WithOutcomeCounter records every operation outcome on c.
func WithOutcomeCounter(c metric.Int64Counter) Option {
	return func(s *TodoService) {
		s.outcomes = c
	}
}

// WithBulkMaxWorkers bounds the concurrency of BulkUpdateTodos.
func WithBulkMaxWorkers(n int) Option {
	return func(s *TodoService) {
		if n > 0 {
			s.maxWorkers = n
		}
	}
}

// NewTodoService creates a TodoService backed by store. A nil logger
// discards all output.
func NewTodoService(store ports.TodoStore, logger *slog.Logger, opts ...Option) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &TodoService{
		store:      store,
		logger:     logger,
		outcomes:   noop.Int64Counter{},
		maxWorkers: defaultBulkMaxWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTodos returns todos matching the filter.
func (s *TodoService) ListTodos(ctx context.Context, filter todo.Filter) result.Result[[]todo.Todo] {
	s.logger.InfoContext(ctx, "listing todos",
		slog.String("status", filter.Status.String()),
		slog.String("category", filter.Category.String()),
	)

	return observe(ctx, s, "ListTodos", s.store.List(ctx, filter))
}

// GetTodo returns a single todo by ID.
func (s *TodoService) GetTodo(ctx context.Context, id int64) result.Result[*todo.Todo] {
	s.logger.InfoContext(ctx, "fetching todo", slog.Int64("id", id))

	return observe(ctx, s, "GetTodo", s.store.Get(ctx, id), slog.Int64("id", id))
}

// CreateTodo validates and stores a new todo. Every validation fault is
// returned, not just the first.
func (s *TodoService) CreateTodo(ctx context.Context, t *todo.Todo) result.Result[*todo.Todo] {
	s.logger.InfoContext(ctx, "creating todo", slog.String("title", t.Title))

	if errs := t.Validate(); len(errs) > 0 {
		return observe(ctx, s, "CreateTodo", result.FromErrors[*todo.Todo](errs))
	}

	return observe(ctx, s, "CreateTodo", s.store.Create(ctx, t))
}

// UpdateTodo applies patch to the todo identified by id.
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, patch todo.Patch) result.Result[*todo.Todo] {
	s.logger.InfoContext(ctx, "updating todo", slog.Int64("id", id))

	return observe(ctx, s, "UpdateTodo", s.update(ctx, id, patch), slog.Int64("id", id))
}

// DeleteTodo removes a todo by ID.
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) result.Result[struct{}] {
	s.logger.InfoContext(ctx, "deleting todo", slog.Int64("id", id))

	return observe(ctx, s, "DeleteTodo", s.store.Delete(ctx, id), slog.Int64("id", id))
}

// BulkUpdateTodos applies each update concurrently, bounded by the
// configured worker count. The returned slice is index-aligned with updates.
func (s *TodoService) BulkUpdateTodos(ctx context.Context, updates []ports.TodoUpdate) []result.Result[*todo.Todo] {
	s.logger.InfoContext(ctx, "bulk updating todos", slog.Int("count", len(updates)))

	results := fanout.Run(ctx, s.maxWorkers, updates, func(ctx context.Context, u ports.TodoUpdate) result.Result[*todo.Todo] {
		return observe(ctx, s, "BulkUpdateTodo", s.update(ctx, u.TodoID, u.Patch), slog.Int64("id", u.TodoID))
	})

	var failed int
	for _, r := range results {
		if r.HasError() {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "bulk update finished",
		slog.Int("updated", len(results)-failed),
		slog.Int("failed", failed),
	)

	return results
}

// Progress returns the average progress of the todos matching filter.
func (s *TodoService) Progress(ctx context.Context, filter todo.Filter) result.Result[int] {
	listed := s.store.List(ctx, filter)
	if listed.HasError() {
		return observe(ctx, s, "Progress", propagate[int](listed))
	}

	return observe(ctx, s, "Progress", result.Success(todo.CalculateProgress(listed.Value())))
}

// update loads the current todo, applies patch, validates the merged entity
// and stores it.
func (s *TodoService) update(ctx context.Context, id int64, patch todo.Patch) result.Result[*todo.Todo] {
	if patch.IsEmpty() {
		return result.FromError[*todo.Todo](domain.InvalidField("patch", "must change at least one field"))
	}

	current := s.store.Get(ctx, id)
	if current.HasError() {
		return current
	}

	merged := patch.Apply(*current.Value())
	if errs := merged.Validate(); len(errs) > 0 {
		return result.FromErrors[*todo.Todo](errs)
	}

	return s.store.Update(ctx, id, &merged)
}

// observe logs a failed outcome and records the outcome metric. It returns r
// unchanged so calls can be written inline.
func observe[V any](ctx context.Context, s *TodoService, op string, r result.Result[V], attrs ...slog.Attr) result.Result[V] {
	telemetry.RecordOutcome(ctx, s.outcomes, op, r)

	if r.HasError() {
		errs := r.Errors()
		logAttrs := make([]slog.Attr, 0, len(attrs)+2)
		logAttrs = append(logAttrs, slog.String("operation", op))
		logAttrs = append(logAttrs, attrs...)
		logAttrs = append(logAttrs, logging.Faults(errs))
		s.logger.LogAttrs(ctx, logging.LevelFor(errs), "operation failed", logAttrs...)
	}

	return r
}

// propagate re-types a failed result. It must only be called on failures.
func propagate[W, V any](r result.Result[V]) result.Result[W] {
	return result.FromErrors[W](r.Errors())
}
