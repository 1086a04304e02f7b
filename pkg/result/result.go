// Package result provides Result, a value that is either a success carrying a
// V or a failure carrying one or more fault.Error values.
//
// Producers return a Result instead of a (V, error) pair when the failure
// modes are expected and categorized:
//
//	func Find(id int64) result.Result[*Todo] {
//	    if t, ok := store[id]; ok {
//	        return result.Success(t)
//	    }
//	    return result.FromError[*Todo](fault.NotFound())
//	}
//
// Consumers check HasError/IsSuccess before reading, or dispatch with Match:
//
//	status := result.Match(res,
//	    func(t *Todo) int { return http.StatusOK },
//	    func(errs []fault.Error) int { return statusFor(errs[0].Type) },
//	)
//
// Reading Value on a failure, or FirstError on a success, is a programming
// error and panics with an *InvalidStateError.
package result

import (
	"log/slog"
	"slices"

	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// outcome is the sealed variant held by a Result.
type outcome interface {
	sealed()
}

type success[V any] struct {
	value V
}

func (success[V]) sealed() {}

type failure struct {
	errs []fault.Error
}

func (failure) sealed() {}

// Result is an immutable outcome. The zero Result is a success holding the
// zero value of V.
type Result[V any] struct {
	o outcome
}

// Success returns a successful Result wrapping v.
func Success[V any](v V) Result[V] {
	return Result[V]{o: success[V]{value: v}}
}

// Failure returns a failed Result holding errs in the given order. The
// slice is copied.
func Failure[V any](errs ...fault.Error) Result[V] {
	stored := make([]fault.Error, len(errs))
	copy(stored, errs)
	return Result[V]{o: failure{errs: stored}}
}

// From converts a bare value into a successful Result.
func From[V any](v V) Result[V] {
	return Success(v)
}

// FromError converts a single error into a failed Result.
func FromError[V any](e fault.Error) Result[V] {
	return Failure[V](e)
}

// FromErrors converts an ordered list of errors into a failed Result.
func FromErrors[V any](errs []fault.Error) Result[V] {
	return Failure[V](errs...)
}

// Try converts a conventional (value, error) pair. A nil err yields a
// success; otherwise the error is converted with fault.From.
func Try[V any](v V, err error) Result[V] {
	if err == nil {
		return Success(v)
	}
	return Failure[V](fault.From(err)...)
}

// HasError reports whether r was constructed on the failure path.
func (r Result[V]) HasError() bool {
	_, failed := r.o.(failure)
	return failed
}

// IsSuccess reports whether r holds a value.
func (r Result[V]) IsSuccess() bool {
	return !r.HasError()
}

// Value returns the wrapped value. It panics with an *InvalidStateError when
// r has errors.
func (r Result[V]) Value() V {
	switch o := r.o.(type) {
	case success[V]:
		return o.value
	case failure:
		panic(&InvalidStateError{Op: "Value", Msg: msgValueOnFailure})
	default:
		var zero V
		return zero
	}
}

// Errors returns a copy of the stored errors. It is empty for a success.
func (r Result[V]) Errors() []fault.Error {
	if f, ok := r.o.(failure); ok {
		return slices.Clone(f.errs)
	}
	return nil
}

// FirstError returns the first stored error. It panics with an
// *InvalidStateError when r is a success or a failure with no errors.
func (r Result[V]) FirstError() fault.Error {
	if f, ok := r.o.(failure); ok && len(f.errs) > 0 {
		return f.errs[0]
	}
	panic(&InvalidStateError{Op: "FirstError", Msg: msgNoErrors})
}

// Get returns the value and a nil error for a success, or the zero value and
// a fault.List for a failure. It never panics.
func (r Result[V]) Get() (V, error) {
	if f, ok := r.o.(failure); ok {
		var zero V
		return zero, fault.List(slices.Clone(f.errs))
	}
	return r.Value(), nil
}

// LogValue implements slog.LogValuer. The value itself is never logged.
func (r Result[V]) LogValue() slog.Value {
	f, ok := r.o.(failure)
	if !ok {
		return slog.GroupValue(slog.String("outcome", "success"))
	}
	return slog.GroupValue(
		slog.String("outcome", "failure"),
		slog.Any("errors", fault.List(f.errs)),
	)
}
