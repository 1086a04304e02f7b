// Package dto provides HTTP request/response data transfer objects, the
// RFC 9457 problem response built from faults, and helpers that render a
// result.Result as either a success body or a problem.
package dto

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/internal/platform/logging"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/fault"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// Bulk item outcomes.
const (
	BulkItemUpdated = "updated"
	BulkItemFailed  = "failed"
)

// TodoResponse represents a single TODO item in HTTP responses.
type TodoResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	Category        string `json:"category"`
	ProgressPercent int    `json:"progress_percent"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// TodoListResponse represents a list of TODO items in HTTP responses.
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
	Count int            `json:"count"`
}

// ProgressResponse carries the average progress of a filtered set of todos.
type ProgressResponse struct {
	ProgressPercent int `json:"progress_percent"`
}

// BulkUpdateTodosResponse reports every item of a bulk update in request
// order.
type BulkUpdateTodosResponse struct {
	Results   []BulkUpdateItemResponse `json:"results"`
	Total     int                      `json:"total"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
}

// BulkUpdateItemResponse is the outcome of one item: the updated todo or
// the faults that stopped it.
type BulkUpdateItemResponse struct {
	TodoID int64          `json:"todo_id"`
	Status string         `json:"status"`
	Todo   *TodoResponse  `json:"todo,omitempty"`
	Errors []ProblemError `json:"errors,omitempty"`
}

// ToTodoResponse converts a domain Todo entity to an HTTP response DTO.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Status:          t.Status.String(),
		Category:        t.Category.String(),
		ProgressPercent: t.ProgressPercent,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
}

// ToTodoListResponse converts domain todos to an HTTP list response DTO.
func ToTodoListResponse(todos []todo.Todo) TodoListResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i])
	}
	return TodoListResponse{Todos: items, Count: len(items)}
}

// ToProgressResponse wraps a progress percentage.
func ToProgressResponse(p int) ProgressResponse {
	return ProgressResponse{ProgressPercent: p}
}

// ToBulkUpdateResponse pairs each update with its result. updates and
// results must have the same length.
func ToBulkUpdateResponse(updates []ports.TodoUpdate, results []result.Result[*todo.Todo]) BulkUpdateTodosResponse {
	resp := BulkUpdateTodosResponse{
		Results: make([]BulkUpdateItemResponse, len(results)),
		Total:   len(results),
	}

	for i, r := range results {
		item := result.Match(r,
			func(t *todo.Todo) BulkUpdateItemResponse {
				tr := ToTodoResponse(t)
				return BulkUpdateItemResponse{Status: BulkItemUpdated, Todo: &tr}
			},
			func(errs []fault.Error) BulkUpdateItemResponse {
				return BulkUpdateItemResponse{Status: BulkItemFailed, Errors: ToProblemErrors(errs)}
			},
		)
		item.TodoID = updates[i].TodoID
		if item.Status == BulkItemUpdated {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Results[i] = item
	}

	return resp
}

// WriteResult renders res: a success is passed through render and written
// with status, a failure is written as a problem response.
func WriteResult[V, R any](w http.ResponseWriter, r *http.Request, status int, res result.Result[V], render func(V) R) {
	result.Match(res,
		func(v V) struct{} {
			WriteJSON(w, r, status, render(v))
			return struct{}{}
		},
		func(errs []fault.Error) struct{} {
			WriteProblem(w, r, errs)
			return struct{}{}
		},
	)
}

// WriteNoContent answers 204 for a successful res, or a problem response.
func WriteNoContent(w http.ResponseWriter, r *http.Request, res result.Result[struct{}]) {
	if res.HasError() {
		WriteProblem(w, r, res.Errors())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WriteJSON writes v as an application/json body.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	write(w, r, "application/json", status, v)
}

func write(w http.ResponseWriter, r *http.Request, contentType string, status int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			slog.Any("error", err),
		)
	}
}
