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

// Package rowio implements the forward, chunk-buffered row cursors
// that sit between immutable column storage and user code: single
// column readers for calculators that only touch one column, and
// whole-row readers (categorical-only and general) for multi-column
// calculators. None of the reader types are safe to share across
// goroutines; each confines itself to the batch thread that owns it.
package rowio

import (
	"fmt"

	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
)

// BeforeFirst is the only legal negative cursor position; it marks a
// reader that has not yet had move/read called on it.
const BeforeFirst = -1

func validatePosition(p int) error {
	if p < BeforeFirst {
		return ctableerr.New(ctableerr.IndexError, "setPosition: %d is below BEFORE_FIRST (%d)", p, BeforeFirst)
	}
	return nil
}

// chunkSizeFor picks the per-column buffer width for a sweep of
// desiredRows rows split across width columns: at least 1, otherwise
// desiredRows/width.
func chunkSizeFor(desiredRows, width int) int {
	if width <= 0 {
		width = 1
	}
	b := desiredRows / width
	if b < 1 {
		b = 1
	}
	return b
}

// SingleColumnNumericReader is a forward cursor over one
// NumericReadable column, refilling a chunk buffer of size B on demand.
type SingleColumnNumericReader struct {
	col       column.Column
	chunkBuf  []float64
	chunkBase int
	loaded    bool
	cursor    int
}

// NewSingleColumnNumericReader builds a reader over col with chunk
// width chunkSize (must be >= 1).
func NewSingleColumnNumericReader(col column.Column, chunkSize int) (*SingleColumnNumericReader, error) {
	if col == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewSingleColumnNumericReader: col is nil")
	}
	if !col.Capabilities().Has(column.NumericReadable) {
		return nil, ctableerr.New(ctableerr.UnsupportedOperation, "NewSingleColumnNumericReader: column is not NumericReadable")
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &SingleColumnNumericReader{
		col:      col,
		chunkBuf: make([]float64, chunkSize),
		cursor:   BeforeFirst,
	}, nil
}

func (r *SingleColumnNumericReader) Position() int { return r.cursor }

func (r *SingleColumnNumericReader) Remaining() int {
	rem := r.col.Size() - (r.cursor + 1)
	if rem < 0 {
		rem = 0
	}
	return rem
}

func (r *SingleColumnNumericReader) HasRemaining() bool { return r.Remaining() > 0 }

func (r *SingleColumnNumericReader) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}
	r.cursor = p
	r.loaded = false // force a refill on next Read
	return nil
}

// Read returns the numeric value at cursor+1 and advances the cursor.
func (r *SingleColumnNumericReader) Read() (float64, error) {
	next := r.cursor + 1
	if !r.loaded || next < r.chunkBase || next >= r.chunkBase+len(r.chunkBuf) {
		if err := r.col.FillNumeric(r.chunkBuf, next, 0, 1); err != nil {
			return 0, err
		}
		r.chunkBase = next
		r.loaded = true
	}
	v := r.chunkBuf[next-r.chunkBase]
	r.cursor = next
	return v, nil
}

// SingleColumnObjectReader is the object-view analogue of
// SingleColumnNumericReader.
type SingleColumnObjectReader struct {
	col       column.Column
	chunkBuf  []any
	chunkBase int
	loaded    bool
	cursor    int
}

// NewSingleColumnObjectReader builds a reader over col with chunk
// width chunkSize (must be >= 1).
func NewSingleColumnObjectReader(col column.Column, chunkSize int) (*SingleColumnObjectReader, error) {
	if col == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewSingleColumnObjectReader: col is nil")
	}
	if !col.Capabilities().Has(column.ObjectReadable) {
		return nil, ctableerr.New(ctableerr.UnsupportedOperation, "NewSingleColumnObjectReader: column is not ObjectReadable")
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &SingleColumnObjectReader{
		col:      col,
		chunkBuf: make([]any, chunkSize),
		cursor:   BeforeFirst,
	}, nil
}

func (r *SingleColumnObjectReader) Position() int { return r.cursor }

func (r *SingleColumnObjectReader) Remaining() int {
	rem := r.col.Size() - (r.cursor + 1)
	if rem < 0 {
		rem = 0
	}
	return rem
}

func (r *SingleColumnObjectReader) HasRemaining() bool { return r.Remaining() > 0 }

func (r *SingleColumnObjectReader) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}
	r.cursor = p
	r.loaded = false
	return nil
}

func (r *SingleColumnObjectReader) Read() (any, error) {
	next := r.cursor + 1
	if !r.loaded || next < r.chunkBase || next >= r.chunkBase+len(r.chunkBuf) {
		if err := r.col.FillObject(r.chunkBuf, next, 0, 1); err != nil {
			return nil, err
		}
		r.chunkBase = next
		r.loaded = true
	}
	v := r.chunkBuf[next-r.chunkBase]
	r.cursor = next
	return v, nil
}

func (r *SingleColumnObjectReader) String() string {
	return fmt.Sprintf("Single Column Object reader (%d)\nRow position: %d", r.col.Size(), r.cursor)
}

func (r *SingleColumnNumericReader) String() string {
	return fmt.Sprintf("Single Column Numeric reader (%d)\nRow position: %d", r.col.Size(), r.cursor)
}
