// SPDX-License-Identifier: MIT

package table

// Cache stores one previously built Table.
// Implementations decide where the table lives and for how long; the
// Builder only asks whether an entry exists, reads it, and writes it.
type Cache interface {
	// Exist reports whether a table is stored.
	Exist() (bool, error)

	// Read returns the stored table.
	Read() (Table, error)

	// Write stores t, replacing any previous table.
	Write(t Table) error
}

// NullCache never holds a table: Exist is always false and Write discards.
// It is the Builder's default, so every Table() call rebuilds.
type NullCache struct{}

// Exist always reports false.
func (NullCache) Exist() (bool, error) { return false, nil }

// Read always returns a nil table.
func (NullCache) Read() (Table, error) { return nil, nil }

// Write discards t.
func (NullCache) Write(Table) error { return nil }
