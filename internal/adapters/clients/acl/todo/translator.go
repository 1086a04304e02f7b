package todo

import (
	"fmt"
	"time"

	domtodo "github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/pkg/fault"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// CodeBadPayload marks a downstream response that could not be translated.
const CodeBadPayload = "DOWNSTREAM_BAD_PAYLOAD"

// ToDomainTodo converts a downstream Resource. Timestamps must be RFC 3339
// and enum values known to the domain; each violation is an Unexpected
// fault.
func ToDomainTodo(dto *Resource) result.Result[domtodo.Todo] {
	var errs []fault.Error

	createdAt, err := time.Parse(time.RFC3339, dto.CreatedAt)
	if err != nil {
		errs = append(errs, badPayload(dto.ID, "created_at", dto.CreatedAt))
	}
	updatedAt, err := time.Parse(time.RFC3339, dto.UpdatedAt)
	if err != nil {
		errs = append(errs, badPayload(dto.ID, "updated_at", dto.UpdatedAt))
	}

	status := domtodo.Status(dto.Status)
	if !status.IsValid() {
		errs = append(errs, badPayload(dto.ID, "status", dto.Status))
	}
	category := domtodo.Category(dto.Category)
	if !category.IsValid() {
		errs = append(errs, badPayload(dto.ID, "category", dto.Category))
	}

	if len(errs) > 0 {
		return result.FromErrors[domtodo.Todo](errs)
	}

	return result.Success(domtodo.Todo{
		ID:              dto.ID,
		Title:           dto.Title,
		Description:     dto.Description,
		Status:          status,
		Category:        category,
		ProgressPercent: dto.ProgressPercent,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	})
}

// ToDomainTodoList converts every item of a ResourceList. Faults from all
// items are collected; the list succeeds only when every item translates.
func ToDomainTodoList(dto ResourceList) result.Result[[]domtodo.Todo] {
	todos := make([]domtodo.Todo, 0, len(dto.Todos))
	var errs []fault.Error

	for i := range dto.Todos {
		r := ToDomainTodo(&dto.Todos[i])
		if r.HasError() {
			errs = append(errs, r.Errors()...)
			continue
		}
		todos = append(todos, r.Value())
	}

	if len(errs) > 0 {
		return result.FromErrors[[]domtodo.Todo](errs)
	}
	return result.Success(todos)
}

// ToWriteBody converts a domain Todo to the body of a create or replace
// call.
func ToWriteBody(t *domtodo.Todo) WriteBody {
	return WriteBody{
		Title:           t.Title,
		Description:     t.Description,
		Status:          t.Status.String(),
		Category:        t.Category.String(),
		ProgressPercent: t.ProgressPercent,
	}
}

func badPayload(id int64, field, value string) fault.Error {
	return fault.Unexpected(
		fault.WithCode(CodeBadPayload),
		fault.WithDescription(fmt.Sprintf("todo %d: invalid %s %q from downstream", id, field, value)),
	)
}
