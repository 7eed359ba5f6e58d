// SPDX-License-Identifier: MIT

package unit

import (
	"errors"
	"fmt"
)

var (
	// ErrUnit indicates a conversion definition that is neither a recognized
	// shape nor parseable into an amount + unit pair.
	ErrUnit = errors.New("unit: cannot parse conversion spec")

	// ErrEmptyName indicates a unit constructed with an empty name.
	ErrEmptyName = errors.New("unit: name is empty")
)

// Error describes a rejected conversion definition.
// It wraps ErrUnit, so callers branch with errors.Is(err, ErrUnit).
type Error struct {
	// Input is the raw definition as received.
	Input any

	// Reason is a short human-readable cause.
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%v %#v: %s", ErrUnit, e.Input, e.Reason)
}

// Unwrap exposes ErrUnit to errors.Is.
func (e *Error) Unwrap() error {
	return ErrUnit
}

func parseError(input any, format string, args ...any) error {
	return &Error{Input: input, Reason: fmt.Sprintf(format, args...)}
}
