// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/katalvlaran/measured/table"
)

// Memory is a process-wide LRU of built tables, safe for concurrent use.
// Tables are stored as-is, so dynamic conversions survive.
type Memory struct {
	entries *lru.Cache
}

// NewMemory returns an LRU holding at most size tables.
func NewMemory(size int) (*Memory, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cache: memory: %w", err)
	}

	return &Memory{entries: c}, nil
}

// Bind returns the table.Cache view of the entry stored under key.
func (m *Memory) Bind(key string) table.Cache {
	return memoryEntry{m: m, key: key}
}

// Evict drops the entry stored under key.
func (m *Memory) Evict(key string) {
	m.entries.Remove(key)
}

// Len returns the number of stored tables.
func (m *Memory) Len() int { return m.entries.Len() }

type memoryEntry struct {
	m   *Memory
	key string
}

func (e memoryEntry) Exist() (bool, error) {
	return e.m.entries.Contains(e.key), nil
}

func (e memoryEntry) Read() (table.Table, error) {
	v, ok := e.m.entries.Get(e.key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMiss, e.key)
	}

	return v.(table.Table), nil
}

func (e memoryEntry) Write(t table.Table) error {
	e.m.entries.Add(e.key, t)

	return nil
}
