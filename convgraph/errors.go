// SPDX-License-Identifier: MIT

package convgraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName indicates a node whose Name() is the empty string.
	ErrEmptyName = errors.New("convgraph: unit name is empty")

	// ErrDuplicateUnit indicates two nodes declaring the same name.
	ErrDuplicateUnit = errors.New("convgraph: duplicate unit")

	// ErrUnknownUnit indicates a unit name absent from the graph.
	ErrUnknownUnit = errors.New("convgraph: unknown unit")

	// ErrCycleDetected indicates a conversion chain that revisits a unit.
	ErrCycleDetected = errors.New("convgraph: cycle detected")
)

// CycleError reports the edge that closes a conversion cycle.
type CycleError struct {
	// From is the unit whose declaration closes the cycle.
	From string

	// To is the already-visited unit it points at.
	To string

	// Cycle is the closed loop [To, ..., From, To].
	Cycle []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %q -> %q closes [%s]", ErrCycleDetected, e.From, e.To, strings.Join(e.Cycle, " -> "))
}

// Unwrap exposes ErrCycleDetected to errors.Is.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}
