package core

import (
	"errors"
	"fmt"
)

// ErrNilArgument is returned by constructors given a nil required dependency.
var ErrNilArgument = errors.New("required argument is nil")

// NilArgument wraps ErrNilArgument with the offending parameter name.
func NilArgument(param string) error {
	return fmt.Errorf("%w: %s", ErrNilArgument, param)
}
