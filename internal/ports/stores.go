package ports

import (
	"context"

	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// TodoStore defines the storage port for todos.
// Implemented by the in-memory store and by the ACL adapter for the
// downstream TODO API; called by the application layer.
// Every method reports business failures as result failures carrying
// fault.Error values. Methods never panic on missing data.
type TodoStore interface {
	// List returns todos matching the filter, ordered by ID.
	// Pass a zero-value Filter to list all todos.
	List(ctx context.Context, filter todo.Filter) result.Result[[]todo.Todo]

	// Get returns a single todo by ID.
	// Fails with domain.TodoNotFound if the todo does not exist.
	Get(ctx context.Context, id int64) result.Result[*todo.Todo]

	// Create stores a new todo and returns it with server-assigned fields
	// (ID, timestamps). Fails with domain.DuplicateTitle on a title clash.
	Create(ctx context.Context, t *todo.Todo) result.Result[*todo.Todo]

	// Update replaces an existing todo and returns the stored entity.
	// Fails with domain.TodoNotFound if the todo does not exist.
	Update(ctx context.Context, id int64, t *todo.Todo) result.Result[*todo.Todo]

	// Delete removes a todo by ID.
	// Fails with domain.TodoNotFound if the todo does not exist.
	Delete(ctx context.Context, id int64) result.Result[struct{}]
}
