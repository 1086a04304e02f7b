package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	acltodo "github.com/jsamuelsen11/go-result/internal/adapters/clients/acl/todo"
	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/fault"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

const todosPath = "/api/v1/todos"

var _ ports.TodoStore = (*TodoClient)(nil)

// TodoClient is the remote [ports.TodoStore]: every call is forwarded to
// the downstream TODO API and translated through the acl/todo package.
//
// Downstream 404s on a single todo are reported as domain.TodoNotFound and
// 409s on create or update as domain.DuplicateTitle, so callers see the same
// faults as from the memory store.
type TodoClient struct {
	req *Requester
}

// NewTodoClient creates a TodoClient that sends requests through client,
// whose base URL points at the downstream API root.
func NewTodoClient(client *httpclient.Client, logger *slog.Logger) *TodoClient {
	return &TodoClient{req: NewRequester(client, logger)}
}

// List fetches GET /api/v1/todos with the filter as query parameters.
func (c *TodoClient) List(ctx context.Context, filter todo.Filter) result.Result[[]todo.Todo] {
	var dto acltodo.ResourceList
	if errs := c.req.Do(ctx, http.MethodGet, todosPath+filterQuery(filter), http.StatusOK, nil, &dto); errs != nil {
		return result.FromErrors[[]todo.Todo](errs)
	}
	return acltodo.ToDomainTodoList(dto)
}

// Get fetches GET /api/v1/todos/{id}.
func (c *TodoClient) Get(ctx context.Context, id int64) result.Result[*todo.Todo] {
	r := c.exchange(ctx, http.MethodGet, todoPath(id), http.StatusOK, nil)
	return pointer(remapNotFound(r, id))
}

// Create sends POST /api/v1/todos.
func (c *TodoClient) Create(ctx context.Context, t *todo.Todo) result.Result[*todo.Todo] {
	r := c.exchange(ctx, http.MethodPost, todosPath, http.StatusCreated, acltodo.ToWriteBody(t))
	return pointer(remapConflict(r, t.Title))
}

// Update sends PUT /api/v1/todos/{id} with every field set.
func (c *TodoClient) Update(ctx context.Context, id int64, t *todo.Todo) result.Result[*todo.Todo] {
	r := c.exchange(ctx, http.MethodPut, todoPath(id), http.StatusOK, acltodo.ToWriteBody(t))
	return pointer(remapConflict(remapNotFound(r, id), t.Title))
}

// Delete sends DELETE /api/v1/todos/{id}.
func (c *TodoClient) Delete(ctx context.Context, id int64) result.Result[struct{}] {
	if errs := c.req.Do(ctx, http.MethodDelete, todoPath(id), http.StatusNoContent, nil, nil); errs != nil {
		return remapNotFound(result.FromErrors[struct{}](errs), id)
	}
	return result.Success(struct{}{})
}

// exchange sends one request whose response body is a single todo.
func (c *TodoClient) exchange(ctx context.Context, method, path string, want int, body any) result.Result[todo.Todo] {
	var dto acltodo.Resource
	if errs := c.req.Do(ctx, method, path, want, body, &dto); errs != nil {
		return result.FromErrors[todo.Todo](errs)
	}
	return acltodo.ToDomainTodo(&dto)
}

func todoPath(id int64) string {
	return fmt.Sprintf("%s/%d", todosPath, id)
}

// remapNotFound replaces generic NotFound faults with domain.TodoNotFound.
func remapNotFound[V any](r result.Result[V], id int64) result.Result[V] {
	return remap(r, fault.TypeNotFound, domain.TodoNotFound(id))
}

// remapConflict replaces generic Conflict faults with domain.DuplicateTitle.
func remapConflict[V any](r result.Result[V], title string) result.Result[V] {
	return remap(r, fault.TypeConflict, domain.DuplicateTitle(title))
}

func remap[V any](r result.Result[V], typ fault.Type, with fault.Error) result.Result[V] {
	if r.IsSuccess() {
		return r
	}
	errs := r.Errors()
	for i := range errs {
		if errs[i].Type == typ {
			errs[i] = with
		}
	}
	return result.FromErrors[V](errs)
}

func pointer(r result.Result[todo.Todo]) result.Result[*todo.Todo] {
	return result.Match(r,
		func(t todo.Todo) result.Result[*todo.Todo] { return result.Success(&t) },
		result.FromErrors[*todo.Todo],
	)
}

// filterQuery renders f as a query string including the leading "?", or ""
// when no filter is set.
func filterQuery(f todo.Filter) string {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status.String())
	}
	if f.Category != "" {
		v.Set("category", f.Category.String())
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
