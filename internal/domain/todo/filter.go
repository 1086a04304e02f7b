package todo

import (
	"fmt"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/pkg/fault"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// Filter selects todos by status and category. An empty field matches
// everything.
type Filter struct {
	Status   Status
	Category Category
}

// ParseFilter builds a Filter from raw query values. Unknown values are
// reported together, category before status.
func ParseFilter(status, category string) result.Result[Filter] {
	f := Filter{Status: Status(status), Category: Category(category)}

	var errs []fault.Error
	if f.Category != "" && !f.Category.IsValid() {
		errs = append(errs, domain.InvalidField("category", fmt.Sprintf("invalid: %q", category)))
	}
	if f.Status != "" && !f.Status.IsValid() {
		errs = append(errs, domain.InvalidField("status", fmt.Sprintf("invalid: %q", status)))
	}
	if len(errs) > 0 {
		return result.FromErrors[Filter](errs)
	}
	return result.Success(f)
}

// Matches reports whether t satisfies every set criterion.
func (f Filter) Matches(t Todo) bool {
	return (f.Status == "" || t.Status == f.Status) &&
		(f.Category == "" || t.Category == f.Category)
}
