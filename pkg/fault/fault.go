// Package fault defines the categorized error value carried by a failed
// result.Result. An Error is plain data: it is never raised, only returned.
//
// Factories fill in a default code and description which options override:
//
//	fault.NotFound()
//	fault.Validation(fault.WithCode("V1"), fault.WithDescription("bad"))
//	fault.Custom("E01", "Some error", fault.TypeUnexpected)
package fault

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Error identifies one failure occurrence. Errors compare equal when all
// three fields are equal.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Type        Type   `json:"type"`
}

// Option overrides a factory default.
type Option func(*Error)

// WithCode overrides the default code.
func WithCode(code string) Option {
	return func(e *Error) {
		e.Code = code
	}
}

// WithDescription overrides the default description.
func WithDescription(description string) Option {
	return func(e *Error) {
		e.Description = description
	}
}

func build(code, description string, t Type, opts []Option) Error {
	e := Error{Code: code, Description: description, Type: t}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Failure returns a TypeFailure error, by default coded "Failure".
func Failure(opts ...Option) Error {
	return build("Failure", "A failure has occurred.", TypeFailure, opts)
}

// NotFound returns a TypeNotFound error, by default coded "NotFound".
func NotFound(opts ...Option) Error {
	return build("NotFound", "The resource was not found.", TypeNotFound, opts)
}

// Validation returns a TypeValidation error, by default coded "Validation".
func Validation(opts ...Option) Error {
	return build("Validation", "Validation failed.", TypeValidation, opts)
}

// Conflict returns a TypeConflict error, by default coded "Conflict".
func Conflict(opts ...Option) Error {
	return build("Conflict", "A conflict occurred.", TypeConflict, opts)
}

// Unexpected returns a TypeUnexpected error, by default coded "Unexpected".
func Unexpected(opts ...Option) Error {
	return build("Unexpected", "An unexpected error occurred.", TypeUnexpected, opts)
}

// Unauthorized returns a TypeUnauthorized error, by default coded "Unauthorized".
func Unauthorized(opts ...Option) Error {
	return build("Unauthorized", "The request is not authorized.", TypeUnauthorized, opts)
}

// Forbidden returns a TypeForbidden error, by default coded "Forbidden".
func Forbidden(opts ...Option) Error {
	return build("Forbidden", "Access to the resource is forbidden.", TypeForbidden, opts)
}

// Custom returns an error with exactly the given fields.
func Custom(code, description string, t Type) Error {
	return Error{Code: code, Description: description, Type: t}
}

// String returns the error code, which is the value used for logging keys
// and lookups.
func (e Error) String() string {
	return e.Code
}

// LogValue implements slog.LogValuer.
func (e Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("code", e.Code),
		slog.String("description", e.Description),
		slog.String("type", e.Type.String()),
	)
}

// List is an ordered set of errors usable as a Go error. It is the bridge
// between fault values and code that speaks the error interface.
type List []Error

// Error implements the error interface.
func (l List) Error() string {
	parts := make([]string, 0, len(l))
	for _, e := range l {
		parts = append(parts, e.Code+": "+e.Description)
	}
	return strings.Join(parts, "; ")
}

// Types returns the type of each error in order.
func (l List) Types() []Type {
	types := make([]Type, 0, len(l))
	for _, e := range l {
		types = append(types, e.Type)
	}
	return types
}

// LogValue implements slog.LogValuer.
func (l List) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(l))
	for i, e := range l {
		attrs = append(attrs, slog.Any(strconv.Itoa(i), e))
	}
	return slog.GroupValue(attrs...)
}

// From converts a Go error into fault errors. A List anywhere in the chain
// is returned as a copy; any other error becomes a single Unexpected error
// described by err.Error(). A nil error yields nil.
func From(err error) []Error {
	if err == nil {
		return nil
	}
	var list List
	if errors.As(err, &list) {
		return append([]Error(nil), list...)
	}
	return []Error{Unexpected(WithDescription(err.Error()))}
}
