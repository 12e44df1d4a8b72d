package unsure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/unsure/frame"
	"github.com/hupe1980/unsure/mass"
)

var (
	// ErrUnknownLabel is returned when a proposition names a label outside the frame.
	ErrUnknownLabel = frame.ErrUnknownLabel

	// ErrMalformedProposition is returned when a textual proposition fails to parse.
	ErrMalformedProposition = frame.ErrMalformedProposition

	// ErrDegenerateMass is returned when a normalizing constant is zero.
	ErrDegenerateMass = mass.ErrDegenerateMass

	// ErrIncompatibleFrame is returned when two BOEs over different frames are combined.
	ErrIncompatibleFrame = errors.New("incompatible frames")

	// ErrTotalConflict is the sentinel behind TotalConflictError.
	ErrTotalConflict = errors.New("total conflict")

	// ErrInvalidAlpha is returned when a CUE weight is outside [0, 1].
	ErrInvalidAlpha = errors.New("alpha must be within [0, 1]")

	// ErrUnknownRule is returned when a rule name or value is not recognized.
	ErrUnknownRule = errors.New("unknown combination rule")
)

// IncompatibleFrameError reports the two frames of a rejected combination.
type IncompatibleFrameError struct {
	Left  []string
	Right []string
}

func (e *IncompatibleFrameError) Error() string {
	return fmt.Sprintf("incompatible frames: [%s] vs [%s]",
		strings.Join(e.Left, ", "), strings.Join(e.Right, ", "))
}

func (e *IncompatibleFrameError) Unwrap() error { return ErrIncompatibleFrame }

// TotalConflictError is returned when Dempster's rule meets a conflict of 1.
// The combined mass is undefined. It matches both ErrTotalConflict and
// ErrDegenerateMass.
type TotalConflictError struct {
	// Conflict is K, within the configured tolerance of 1.
	Conflict float64
}

func (e *TotalConflictError) Error() string {
	return fmt.Sprintf("total conflict: K = %g, Dempster's rule is undefined", e.Conflict)
}

func (e *TotalConflictError) Unwrap() []error {
	return []error{ErrTotalConflict, mass.ErrDegenerateMass}
}

// SourceError identifies the source at which a multisource fusion or an
// update stream stopped.
type SourceError struct {
	// Index is the position of the failing BOE in the argument list.
	Index int
	cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %d: %v", e.Index, e.cause)
}

func (e *SourceError) Unwrap() error { return e.cause }

func checkFrames(a, b *BOE) error {
	if a.frame.Equal(b.frame) {
		return nil
	}
	return &IncompatibleFrameError{Left: a.frame.Labels(), Right: b.frame.Labels()}
}
