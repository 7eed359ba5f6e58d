// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/katalvlaran/measured/table"
)

// File stores one static table as a msgpack file. Writes go to a temporary
// file in the same directory and are renamed into place, so readers never
// observe a partial payload.
type File struct {
	path string
}

// NewFile returns a cache backed by the file at path. Nothing is touched
// until the first call.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Exist reports whether the backing file exists.
func (f *File) Exist() (bool, error) {
	_, err := os.Stat(f.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("cache: file: %w", err)
	}
}

// Read decodes the backing file.
//
// Errors: ErrMiss when the file is absent; ErrCorrupt for a bad payload.
func (f *File) Read() (table.Table, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMiss, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("cache: file: %w", err)
	}

	return Decode(b)
}

// Write replaces the backing file with t.
//
// Errors: ErrNotPersistable when t holds composed conversions; the existing
// file is then left untouched.
func (f *File) Write(t table.Table) error {
	b, err := Encode(t)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cache: file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err = tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("cache: file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("cache: file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("cache: file: %w", err)
	}

	return nil
}

// Remove deletes the backing file. A missing file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cache: file: %w", err)
	}

	return nil
}
