package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-result/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-result/internal/ports"
)

// TodoHandler serves the todo endpoints. Every service result is rendered
// through dto.WriteResult, so failures always become problem responses.
type TodoHandler struct {
	svc ports.TodoService
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(svc ports.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ListTodos handles GET /api/v1/todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	filter := parseTodoFilter(r)
	if filter.HasError() {
		dto.WriteProblem(w, r, filter.Errors())
		return
	}

	dto.WriteResult(w, r, http.StatusOK, h.svc.ListTodos(r.Context(), filter.Value()), dto.ToTodoListResponse)
}

// CreateTodo handles POST /api/v1/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	req := decodeJSON[dto.CreateTodoRequest](w, r)
	if req.HasError() {
		dto.WriteProblem(w, r, req.Errors())
		return
	}

	body := req.Value()
	dto.WriteResult(w, r, http.StatusCreated, h.svc.CreateTodo(r.Context(), body.ToTodo()), dto.ToTodoResponse)
}

// GetTodo handles GET /api/v1/todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id := parseID(r, "id")
	if id.HasError() {
		dto.WriteProblem(w, r, id.Errors())
		return
	}

	dto.WriteResult(w, r, http.StatusOK, h.svc.GetTodo(r.Context(), id.Value()), dto.ToTodoResponse)
}

// UpdateTodo handles PATCH /api/v1/todos/{id}.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := parseID(r, "id")
	if id.HasError() {
		dto.WriteProblem(w, r, id.Errors())
		return
	}

	req := decodeJSON[dto.UpdateTodoRequest](w, r)
	if req.HasError() {
		dto.WriteProblem(w, r, req.Errors())
		return
	}

	body := req.Value()
	dto.WriteResult(w, r, http.StatusOK, h.svc.UpdateTodo(r.Context(), id.Value(), body.ToPatch()), dto.ToTodoResponse)
}

// DeleteTodo handles DELETE /api/v1/todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := parseID(r, "id")
	if id.HasError() {
		dto.WriteProblem(w, r, id.Errors())
		return
	}

	dto.WriteNoContent(w, r, h.svc.DeleteTodo(r.Context(), id.Value()))
}

// BulkUpdateTodos handles POST /api/v1/todos:bulk-update. The response is
// 200 whenever the envelope is valid; each item carries its own outcome.
func (h *TodoHandler) BulkUpdateTodos(w http.ResponseWriter, r *http.Request) {
	req := decodeJSON[dto.BulkUpdateTodosRequest](w, r)
	if req.HasError() {
		dto.WriteProblem(w, r, req.Errors())
		return
	}

	body := req.Value()
	if errs := body.Validate(); len(errs) > 0 {
		dto.WriteProblem(w, r, errs)
		return
	}

	updates := body.ToUpdates()
	results := h.svc.BulkUpdateTodos(r.Context(), updates)
	dto.WriteJSON(w, r, http.StatusOK, dto.ToBulkUpdateResponse(updates, results))
}

// Progress handles GET /api/v1/todos:progress, accepting the same filters
// as ListTodos.
func (h *TodoHandler) Progress(w http.ResponseWriter, r *http.Request) {
	filter := parseTodoFilter(r)
	if filter.HasError() {
		dto.WriteProblem(w, r, filter.Errors())
		return
	}

	dto.WriteResult(w, r, http.StatusOK, h.svc.Progress(r.Context(), filter.Value()), dto.ToProgressResponse)
}
