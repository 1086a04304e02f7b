package ports

import (
	"context"

	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// TodoService defines the service port for todo operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// ListTodos returns todos matching the filter.
	ListTodos(ctx context.Context, filter todo.Filter) result.Result[[]todo.Todo]

	// GetTodo returns a single todo by ID.
	GetTodo(ctx context.Context, id int64) result.Result[*todo.Todo]

	// CreateTodo validates and stores a new todo. All validation faults are
	// reported together.
	CreateTodo(ctx context.Context, t *todo.Todo) result.Result[*todo.Todo]

	// UpdateTodo applies a partial update to an existing todo and validates
	// the merged entity before storing it.
	UpdateTodo(ctx context.Context, id int64, patch todo.Patch) result.Result[*todo.Todo]

	// DeleteTodo removes a todo by ID.
	DeleteTodo(ctx context.Context, id int64) result.Result[struct{}]

	// BulkUpdateTodos applies several updates concurrently. Each update
	// succeeds or fails independently; the returned slice has one result per
	// input, in input order.
	BulkUpdateTodos(ctx context.Context, updates []TodoUpdate) []result.Result[*todo.Todo]

	// Progress returns the average progress of the todos matching filter.
	Progress(ctx context.Context, filter todo.Filter) result.Result[int]
}

// TodoUpdate pairs a todo ID with the patch to apply in a bulk operation.
type TodoUpdate struct {
	TodoID int64
	Patch  todo.Patch
}
