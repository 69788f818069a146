// Copyright (C) 2024 Colplane, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package ctable

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a blake2b-256 digest over the table's ordered
// (label, type, category) tuples and its height. It identifies a
// table's *shape*, not
// its contents: two tables with the same columns in the same order but
// different cell values fingerprint identically. This is the in-memory
// analogue of a schema/version hash, meant for log correlation (pair it
// with an exec run ID to tell which table shape a failing transform ran
// against) — not a content checksum and not a substitute for persistence.
func (t *Table) Fingerprint() [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors for an over-length key, and nil
		// never qualifies.
		panic(fmt.Sprintf("ctable: blake2b.New256: %v", err))
	}
	var scratch [2]byte
	for i, label := range t.labels {
		col := t.columns[i]
		fmt.Fprintf(h, "%s\x00", label)
		scratch[0] = byte(col.Type())
		scratch[1] = byte(col.Category())
		h.Write(scratch[:])
	}
	var height [8]byte
	binary.LittleEndian.PutUint64(height[:], uint64(t.height))
	h.Write(height[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
