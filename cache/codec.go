// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/measured/table"
)

const payloadVersion = 1

var (
	// ErrMiss indicates a Read with no stored table.
	ErrMiss = errors.New("cache: no table stored")

	// ErrNotPersistable indicates a table holding a composed conversion,
	// which has no serialized form.
	ErrNotPersistable = errors.New("cache: table is not persistable")

	// ErrCorrupt indicates a stored payload that does not decode into a
	// dense table.
	ErrCorrupt = errors.New("cache: corrupt payload")
)

// payload is the serialized table. Rows and entries are slices in sorted
// unit order, so equal tables encode to identical bytes. Factors are
// RatString literals; the empty string stands for the exact identity.
type payload struct {
	Version int      `msgpack:"version"`
	Units   []string `msgpack:"units"`
	Rows    []row    `msgpack:"rows"`
}

type row struct {
	From    string  `msgpack:"from"`
	Entries []entry `msgpack:"entries"`
}

type entry struct {
	To     string `msgpack:"to"`
	Factor string `msgpack:"factor"`
}

// Encode serializes a static table.
//
// Errors: ErrNotPersistable when an entry is composed.
func Encode(t table.Table) ([]byte, error) {
	p := payload{
		Version: payloadVersion,
		Units:   t.Units(),
		Rows:    make([]row, 0, t.Len()),
	}
	for _, from := range p.Units {
		src := t[from]
		r := row{From: from, Entries: make([]entry, 0, len(src))}
		for _, to := range sortedKeys(src) {
			c := src[to]
			switch c.Kind() {
			case table.KindIdentity:
				r.Entries = append(r.Entries, entry{To: to})
			case table.KindStatic:
				f, _ := c.Factor()
				r.Entries = append(r.Entries, entry{To: to, Factor: f.RatString()})
			default:
				return nil, fmt.Errorf("%w: %q -> %q is %s", ErrNotPersistable, from, to, c)
			}
		}
		p.Rows = append(p.Rows, r)
	}

	b, err := msgpack.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("cache: encode: %w", err)
	}

	return b, nil
}

func sortedKeys(m map[string]table.Conversion) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Decode restores a table written by Encode.
//
// Errors: ErrCorrupt for undecodable bytes, an unknown version, a bad factor,
// or a table that is not dense over its units.
func Decode(b []byte) (table.Table, error) {
	var p payload
	if err := msgpack.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if p.Version != payloadVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrCorrupt, p.Version, payloadVersion)
	}
	if len(p.Rows) != len(p.Units) {
		return nil, fmt.Errorf("%w: %d rows for %d units", ErrCorrupt, len(p.Rows), len(p.Units))
	}

	declared := make(map[string]bool, len(p.Units))
	for _, name := range p.Units {
		declared[name] = true
	}

	t := make(table.Table, len(p.Units))
	for _, r := range p.Rows {
		if !declared[r.From] {
			return nil, fmt.Errorf("%w: row for unknown unit %q", ErrCorrupt, r.From)
		}
		if _, dup := t[r.From]; dup {
			return nil, fmt.Errorf("%w: duplicate row %q", ErrCorrupt, r.From)
		}
		if len(r.Entries) != len(p.Units) {
			return nil, fmt.Errorf("%w: row %q is not dense", ErrCorrupt, r.From)
		}

		out := make(map[string]table.Conversion, len(p.Units))
		for _, e := range r.Entries {
			if !declared[e.To] {
				return nil, fmt.Errorf("%w: %q -> unknown unit %q", ErrCorrupt, r.From, e.To)
			}
			if _, dup := out[e.To]; dup {
				return nil, fmt.Errorf("%w: duplicate entry %q -> %q", ErrCorrupt, r.From, e.To)
			}
			c, err := decodeFactor(e.Factor)
			if err != nil {
				return nil, fmt.Errorf("%w: %q -> %q: %v", ErrCorrupt, r.From, e.To, err)
			}
			out[e.To] = c
		}
		t[r.From] = out
	}

	return t, nil
}

func decodeFactor(lit string) (table.Conversion, error) {
	if lit == "" {
		return table.Identity(), nil
	}
	f, ok := new(big.Rat).SetString(lit)
	if !ok || f.Sign() == 0 {
		return table.Conversion{}, fmt.Errorf("bad factor %q", lit)
	}

	return table.Scale(f), nil
}
