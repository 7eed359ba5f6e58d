// SPDX-License-Identifier: MIT

// Package cache provides table.Cache implementations.
//
//   - Memory keeps built tables in a process-wide LRU, dynamic entries included.
//   - File stores one static table as a msgpack file, replaced atomically.
//   - SQLite stores static tables in a conversion_tables row per key.
//
// Key fingerprints a unit collection so distinct collections never share an
// entry. Only tables made of identities and exact factors are persistable;
// File and SQLite reject composed conversions with ErrNotPersistable.
package cache
