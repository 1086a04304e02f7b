package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// Todo represents a task item with progress tracking.
type Todo struct {
	ID              int64
	Title           string
	Description     string
	Status          Status
	Category        Category
	ProgressPercent int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks business rules for the Todo entity and returns one
// validation fault per violated rule, ordered by field name. A nil slice
// means the todo is valid.
func (t *Todo) Validate() []fault.Error {
	var errs []fault.Error

	if !t.Category.IsValid() {
		errs = append(errs, domain.InvalidField("category", fmt.Sprintf("invalid: %q", t.Category)))
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, domain.InvalidField("description", domain.MsgRequired))
	}
	if t.ProgressPercent < 0 || t.ProgressPercent > 100 {
		errs = append(errs, domain.InvalidField("progress_percent",
			fmt.Sprintf("must be 0-100, got %d", t.ProgressPercent)))
	}
	if !t.Status.IsValid() {
		errs = append(errs, domain.InvalidField("status", fmt.Sprintf("invalid: %q", t.Status)))
	}
	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, domain.InvalidField("title", domain.MsgRequired))
	}

	return errs
}

// Patch describes a partial update. Nil fields are left unchanged.
type Patch struct {
	Title           *string
	Description     *string
	Status          *Status
	Category        *Category
	ProgressPercent *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Category == nil && p.ProgressPercent == nil
}

// Apply returns a copy of t with the non-nil patch fields written over it.
func (p Patch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ProgressPercent != nil {
		t.ProgressPercent = *p.ProgressPercent
	}
	return t
}
