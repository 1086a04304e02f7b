package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// Fault codes produced by the domain and its adapters.
const (
	CodeTodoNotFound   = "TODO_NOT_FOUND"
	CodeDuplicateTitle = "TODO_DUPLICATE_TITLE"
	CodeUnavailable    = "DOWNSTREAM_UNAVAILABLE"
	CodeCanceled       = "REQUEST_CANCELED"
	CodeTimeout        = "REQUEST_TIMEOUT"
	CodeInvalidPrefix  = "INVALID_"
)

// MsgRequired is the validation message for mandatory fields.
const MsgRequired = "is required"

// TodoNotFound reports that no todo exists with the given ID.
func TodoNotFound(id int64) fault.Error {
	return fault.NotFound(
		fault.WithCode(CodeTodoNotFound),
		fault.WithDescription(fmt.Sprintf("todo %d was not found", id)),
	)
}

// DuplicateTitle reports that another todo already uses title.
func DuplicateTitle(title string) fault.Error {
	return fault.Conflict(
		fault.WithCode(CodeDuplicateTitle),
		fault.WithDescription(fmt.Sprintf("a todo titled %q already exists", title)),
	)
}

// Unavailable reports that a downstream dependency could not serve the
// request. detail must be safe to show to clients.
func Unavailable(detail string) fault.Error {
	return fault.Unexpected(
		fault.WithCode(CodeUnavailable),
		fault.WithDescription(detail),
	)
}

// InvalidField reports a single field-level validation failure. field may be
// a path such as "updates[3].todo_id": the code keys on the leaf name alone
// (INVALID_TODO_ID) and the full path stays in the description.
func InvalidField(field, msg string) fault.Error {
	leaf := field[strings.LastIndex(field, ".")+1:]
	if i := strings.IndexByte(leaf, '['); i >= 0 {
		leaf = leaf[:i]
	}
	return fault.Validation(
		fault.WithCode(CodeInvalidPrefix+strings.ToUpper(leaf)),
		fault.WithDescription(field+": "+msg),
	)
}

// Canceled reports work abandoned because its context ended.
func Canceled(err error) fault.Error {
	return fault.Unexpected(
		fault.WithCode(CodeCanceled),
		fault.WithDescription(err.Error()),
	)
}

// Timeout reports a request that did not finish within limit.
func Timeout(limit time.Duration) fault.Error {
	return fault.Unexpected(
		fault.WithCode(CodeTimeout),
		fault.WithDescription(fmt.Sprintf("the request did not complete within %s", limit)),
	)
}
