package ddl

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotFound is returned when the target table does not exist
	ErrTableNotFound = errors.New("table not found")
	// ErrAmbiguousConstraint is returned when rows sharing a constraint name disagree
	ErrAmbiguousConstraint = errors.New("ambiguous constraint")
	// ErrIncompleteConstraint is returned when structured constraint rows lack
	// the data their kind requires
	ErrIncompleteConstraint = errors.New("incomplete constraint")
)

// ConstraintError describes a constraint that cannot be rendered
type ConstraintError struct {
	Name   string
	Reason string
	Kind   error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.Name, e.Reason)
}

func (e *ConstraintError) Unwrap() error {
	return e.Kind
}
