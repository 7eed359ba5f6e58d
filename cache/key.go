// SPDX-License-Identifier: MIT

package cache

import (
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/measured/unit"
)

// namespace scopes Key fingerprints.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/katalvlaran/measured/conversion-table"))

// Key returns a deterministic UUIDv5 fingerprint of units: names, aliases,
// targets and conversion strings in declaration order.
//
// Functions cannot be fingerprinted, so a dynamic rule contributes only its
// description. Two unit sets whose dynamic rules share descriptions but
// compute different values get the same key, and a Memory entry bound to
// that key serves one set's table to the other. Callers must give every
// distinct dynamic rule a distinct description, or choose their own keys for
// unit sets that carry dynamic rules.
func Key(units []*unit.Unit) string {
	var b strings.Builder
	for _, u := range units {
		b.WriteString(u.Name())
		b.WriteByte(0x1f)
		b.WriteString(strings.Join(u.Aliases(), "\x1e"))
		b.WriteByte(0x1f)
		b.WriteString(u.ConversionUnit())
		b.WriteByte(0x1f)
		b.WriteString(u.Conversion().Kind().String())
		b.WriteByte(0x1f)
		b.WriteString(u.Conversion().String())
		b.WriteByte('\n')
	}

	return uuid.NewSHA1(namespace, []byte(b.String())).String()
}
