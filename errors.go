package attrmap

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a precondition violation: an operation
// received an empty namespace or attribute name where one is required.
// Go strings cannot be nil, so the empty string is the absent marker
// for keys; it is never a valid namespace or attribute name.
var ErrInvalidArgument = errors.New("attrmap: invalid argument")

var (
	errEmptyNamespace = fmt.Errorf("%w: namespace must not be empty", ErrInvalidArgument)
	errEmptyName      = fmt.Errorf("%w: attribute name must not be empty", ErrInvalidArgument)
)

func checkKeys(namespace, name string) error {
	if namespace == "" {
		return errEmptyNamespace
	}
	if name == "" {
		return errEmptyName
	}
	return nil
}
