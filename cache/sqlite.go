// SPDX-License-Identifier: MIT

package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/measured/table"
)

const schema = `CREATE TABLE IF NOT EXISTS conversion_tables (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLite stores the static table of one key in a conversion_tables row.
// Several SQLite values may share a database file under different keys.
type SQLite struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (creating if needed) the database at path and binds the
// cache to key, usually Key(units).
func OpenSQLite(path, key string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: sqlite: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: sqlite schema: %w", err)
	}

	return &SQLite{db: db, key: key}, nil
}

// Key returns the bound key.
func (s *SQLite) Key() string { return s.key }

// Exist reports whether a row is stored under the bound key.
func (s *SQLite) Exist() (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM conversion_tables WHERE key = ?`, s.key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("cache: sqlite: %w", err)
	}

	return n > 0, nil
}

// Read decodes the stored row.
//
// Errors: ErrMiss when no row exists; ErrCorrupt for a bad payload.
func (s *SQLite) Read() (table.Table, error) {
	var b []byte
	err := s.db.QueryRow(`SELECT payload FROM conversion_tables WHERE key = ?`, s.key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrMiss, s.key)
	}
	if err != nil {
		return nil, fmt.Errorf("cache: sqlite: %w", err)
	}

	return Decode(b)
}

// Write upserts t under the bound key.
//
// Errors: ErrNotPersistable when t holds composed conversions.
func (s *SQLite) Write(t table.Table) error {
	b, err := Encode(t)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO conversion_tables (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.key, b, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("cache: sqlite: %w", err)
	}

	return nil
}

// UpdatedAt returns when the bound row was last written.
//
// Errors: ErrMiss when no row exists.
func (s *SQLite) UpdatedAt() (time.Time, error) {
	var ts string
	err := s.db.QueryRow(`SELECT updated_at FROM conversion_tables WHERE key = ?`, s.key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMiss, s.key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("cache: sqlite: %w", err)
	}

	return time.Parse(time.RFC3339Nano, ts)
}

// Evict deletes the bound row. A missing row is not an error.
func (s *SQLite) Evict() error {
	if _, err := s.db.Exec(`DELETE FROM conversion_tables WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("cache: sqlite: %w", err)
	}

	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
