package resource

import (
	"errors"
	"fmt"
)

// ErrOverBudget is returned when a single request can never fit the memory limit.
var ErrOverBudget = errors.New("resource budget exceeded")

// OverBudgetError reports the size of a rejected memory request.
type OverBudgetError struct {
	Requested int64
	Limit     int64
}

func (e *OverBudgetError) Error() string {
	return fmt.Sprintf("memory request of %d bytes exceeds limit of %d bytes", e.Requested, e.Limit)
}

func (e *OverBudgetError) Unwrap() error { return ErrOverBudget }
