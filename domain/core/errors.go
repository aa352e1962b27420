package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrInvalidParameter = errors.New("invalid parameter")

	// Shape errors
	ErrShapeMismatch = errors.New("sample sets have mismatched lengths")

	// Statistic errors
	ErrEmptySample       = errors.New("empty sample")
	ErrInvalidPercentile = errors.New("percentile out of range [0,100]")
)

// Error constructors with context
func NewInvalidParameterError(param string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, param, reason)
}

func NewShapeMismatchError(name string, got, want int) error {
	return fmt.Errorf("%w: %s has length %d, expected %d", ErrShapeMismatch, name, got, want)
}

func NewEmptySampleError(name string) error {
	return fmt.Errorf("%w: %s", ErrEmptySample, name)
}

func NewInvalidPercentileError(p float64) error {
	return fmt.Errorf("%w: got %v", ErrInvalidPercentile, p)
}

// Error checking helpers
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

func IsEmptySample(err error) bool {
	return errors.Is(err, ErrEmptySample)
}

func IsInvalidPercentile(err error) bool {
	return errors.Is(err, ErrInvalidPercentile)
}

// IsInputError reports whether err was caused by caller-supplied input
// rather than an internal failure.
func IsInputError(err error) bool {
	return IsInvalidParameter(err) || IsInvalidPercentile(err)
}
