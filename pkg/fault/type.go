package fault

import (
	"fmt"
	"strconv"
)

// Type classifies the nature of a failure. The set is closed: switches over
// Type are checked for exhaustiveness by the exhaustive linter.
type Type int

const (
	TypeFailure Type = iota
	TypeValidation
	TypeUnexpected
	TypeConflict
	TypeNotFound
	TypeUnauthorized
	TypeForbidden
)

var typeNames = [...]string{
	TypeFailure:      "Failure",
	TypeValidation:   "Validation",
	TypeUnexpected:   "Unexpected",
	TypeConflict:     "Conflict",
	TypeNotFound:     "NotFound",
	TypeUnauthorized: "Unauthorized",
	TypeForbidden:    "Forbidden",
}

// Types returns every Type in declaration order.
func Types() []Type {
	all := make([]Type, len(typeNames))
	for i := range typeNames {
		all[i] = Type(i)
	}
	return all
}

// IsValid returns true if t is one of the declared constants.
func (t Type) IsValid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if !t.IsValid() {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("fault: cannot marshal unknown type %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType returns the Type whose name is s. Matching is case sensitive.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("fault: unknown type %q", s)
}
