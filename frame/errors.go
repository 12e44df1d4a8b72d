package frame

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFrame is returned when a frame is built without labels.
	ErrEmptyFrame = errors.New("frame has no labels")

	// ErrFrameTooLarge is returned when a frame exceeds MaxLabels.
	ErrFrameTooLarge = fmt.Errorf("frame exceeds %d labels", MaxLabels)

	// ErrEmptyLabel is returned when a label is empty after normalization.
	ErrEmptyLabel = errors.New("empty label")

	// ErrDuplicateLabel is returned when a label occurs twice in a frame.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrIndexOutOfRange is returned when an index does not encode a subset of the frame.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownLabel is the sentinel behind UnknownLabelError.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrMalformedProposition is the sentinel behind MalformedPropositionError.
	ErrMalformedProposition = errors.New("malformed proposition")
)

// UnknownLabelError reports a proposition label that is not part of the frame.
type UnknownLabelError struct {
	Label string
	Frame []string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown label %q: frame is [%s]", e.Label, strings.Join(e.Frame, ", "))
}

func (e *UnknownLabelError) Unwrap() error { return ErrUnknownLabel }

// MalformedPropositionError reports textual input that is not a list of quoted labels.
type MalformedPropositionError struct {
	Input  string
	Offset int
	Reason string
}

func (e *MalformedPropositionError) Error() string {
	return fmt.Sprintf("malformed proposition %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

func (e *MalformedPropositionError) Unwrap() error { return ErrMalformedProposition }
