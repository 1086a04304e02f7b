package result

import "errors"

// ErrInvalidState is matched by every *InvalidStateError.
var ErrInvalidState = errors.New("result: invalid state")

const (
	msgValueOnFailure = "cannot access Value when the result has errors"
	msgNoErrors       = "cannot access FirstError when there are no errors"
)

// InvalidStateError is the panic value raised when an accessor is used
// against the wrong variant of a Result. It signals misuse by the caller and
// is not meant to be recovered by library code.
type InvalidStateError struct {
	Op  string
	Msg string
}

func (e *InvalidStateError) Error() string {
	return "result." + e.Op + ": " + e.Msg
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
