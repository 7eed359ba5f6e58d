// SPDX-License-Identifier: MIT

package table

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrMissingConversionPath indicates two units with no direct or
	// composed conversion between them.
	ErrMissingConversionPath = errors.New("table: missing conversion path")

	// ErrRoundTrip indicates a pair whose forward/inverse conversions do not
	// recover the sample amount (opt-in check).
	ErrRoundTrip = errors.New("table: round trip mismatch")

	// ErrUnknownUnit indicates a lookup on a unit absent from the table.
	ErrUnknownUnit = errors.New("table: unknown unit")
)

// PathError names the two units that cannot be converted into each other.
type PathError struct {
	From string
	To   string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%v from %q to %q", ErrMissingConversionPath, e.From, e.To)
}

// Unwrap exposes ErrMissingConversionPath to errors.Is.
func (e *PathError) Unwrap() error { return ErrMissingConversionPath }

// RoundTripError reports the first pair failing the round-trip check.
type RoundTripError struct {
	From   string
	To     string
	Sample *big.Rat // amount of From converted to To and back
	Got    *big.Rat // what came back
}

// Error implements the error interface.
func (e *RoundTripError) Error() string {
	return fmt.Sprintf("%v: %s %s -> %s -> %s gave %s",
		ErrRoundTrip, e.Sample.RatString(), e.From, e.To, e.From, e.Got.RatString())
}

// Unwrap exposes ErrRoundTrip to errors.Is.
func (e *RoundTripError) Unwrap() error { return ErrRoundTrip }
