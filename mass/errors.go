package mass

import (
	"errors"
	"fmt"
)

// ErrDegenerateMass is returned when a normalized quantity is requested from
// a store whose normalizing constant is zero.
var ErrDegenerateMass = errors.New("degenerate mass: normalizing constant is zero")

// DegenerateMassError carries the store size alongside ErrDegenerateMass.
type DegenerateMassError struct {
	Entries int
}

func (e *DegenerateMassError) Error() string {
	return fmt.Sprintf("degenerate mass: %d entries sum to zero", e.Entries)
}

func (e *DegenerateMassError) Unwrap() error { return ErrDegenerateMass }
