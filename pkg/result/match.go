package result

import "github.com/jsamuelsen11/go-result/pkg/fault"

// Match calls onValue with the value of a successful r, or onErrors with the
// errors of a failed r, and returns what the called function returns.
// Exactly one of the two functions runs.
func Match[V, R any](r Result[V], onValue func(V) R, onErrors func([]fault.Error) R) R {
	if r.HasError() {
		return onErrors(r.Errors())
	}
	return onValue(r.Value())
}

// MatchFirst is Match for callers that only care about one error: the
// failure branch receives r.FirstError(), so a failure with no errors panics
// with an *InvalidStateError.
func MatchFirst[V, R any](r Result[V], onValue func(V) R, onFirstError func(fault.Error) R) R {
	if r.HasError() {
		return onFirstError(r.FirstError())
	}
	return onValue(r.Value())
}
