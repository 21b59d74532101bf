package beam

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned before any solve for out-of-range inputs
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSection is returned when no positive neutral axis depth exists
	ErrInvalidSection = errors.New("invalid section")

	// ErrDegenerateEquilibrium is returned when the combined compression
	// resultant vanishes during iteration
	ErrDegenerateEquilibrium = errors.New("degenerate equilibrium")

	// ErrNonConvergence flags an unconverged iterative result
	ErrNonConvergence = errors.New("solution did not converge")
)

// InputError represents a rejected input value
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %.4g", e.Field, e.Value)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
