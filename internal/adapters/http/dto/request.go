package dto

import (
	"fmt"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// MaxBulkUpdates caps the number of items in one bulk update request.
const MaxBulkUpdates = 100

// CreateTodoRequest represents the JSON body for creating a new TODO item.
// Field rules are enforced by todo.Todo.Validate in the service.
type CreateTodoRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status,omitempty"`
	Category        string `json:"category,omitempty"`
	ProgressPercent int    `json:"progress_percent,omitempty"`
}

// ToTodo maps the request to a new entity. Status defaults to pending and
// category to personal.
func (r *CreateTodoRequest) ToTodo() *todo.Todo {
	t := &todo.Todo{
		Title:           r.Title,
		Description:     r.Description,
		Status:          todo.StatusPending,
		Category:        todo.CategoryPersonal,
		ProgressPercent: r.ProgressPercent,
	}
	if r.Status != "" {
		t.Status = todo.Status(r.Status)
	}
	if r.Category != "" {
		t.Category = todo.Category(r.Category)
	}
	return t
}

// UpdateTodoRequest represents the JSON body for updating an existing TODO
// item. All fields are optional; nil means "do not change this field".
type UpdateTodoRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Status          *string `json:"status,omitempty"`
	Category        *string `json:"category,omitempty"`
	ProgressPercent *int    `json:"progress_percent,omitempty"`
}

// ToPatch maps the request to a domain patch.
func (r *UpdateTodoRequest) ToPatch() todo.Patch {
	p := todo.Patch{
		Title:           r.Title,
		Description:     r.Description,
		ProgressPercent: r.ProgressPercent,
	}
	if r.Status != nil {
		s := todo.Status(*r.Status)
		p.Status = &s
	}
	if r.Category != nil {
		c := todo.Category(*r.Category)
		p.Category = &c
	}
	return p
}

// BulkUpdateTodosRequest is the body of POST /api/v1/todos:bulk-update.
type BulkUpdateTodosRequest struct {
	Updates []BulkUpdateItem `json:"updates"`
}

// BulkUpdateItem is one partial update; the patch fields sit beside
// todo_id.
type BulkUpdateItem struct {
	TodoID int64 `json:"todo_id"`
	UpdateTodoRequest
}

// Validate checks the envelope only: item count, positive IDs and no ID
// repeated. Patch contents are validated per item by the service.
func (r *BulkUpdateTodosRequest) Validate() []fault.Error {
	switch {
	case len(r.Updates) == 0:
		return []fault.Error{domain.InvalidField("updates", "must not be empty")}
	case len(r.Updates) > MaxBulkUpdates:
		return []fault.Error{domain.InvalidField("updates",
			fmt.Sprintf("must contain at most %d items, got %d", MaxBulkUpdates, len(r.Updates)))}
	}

	var errs []fault.Error
	seen := make(map[int64]int, len(r.Updates))
	for i, u := range r.Updates {
		field := fmt.Sprintf("updates[%d].todo_id", i)
		if u.TodoID <= 0 {
			errs = append(errs, domain.InvalidField(field, "must be a positive integer"))
			continue
		}
		if first, dup := seen[u.TodoID]; dup {
			errs = append(errs, domain.InvalidField(field, fmt.Sprintf("duplicates updates[%d]", first)))
			continue
		}
		seen[u.TodoID] = i
	}
	return errs
}

// ToUpdates maps the request to service updates in request order.
func (r *BulkUpdateTodosRequest) ToUpdates() []ports.TodoUpdate {
	out := make([]ports.TodoUpdate, len(r.Updates))
	for i := range r.Updates {
		out[i] = ports.TodoUpdate{
			TodoID: r.Updates[i].TodoID,
			Patch:  r.Updates[i].ToPatch(),
		}
	}
	return out
}
