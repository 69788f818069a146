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

package rowio

import (
	"fmt"

	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
)

// RowReader is a multi-column cursor restricted to categorical
// columns. Since a categorical column's per-row dictionary index is
// already an O(1) packed-array lookup, RowReader reads straight
// through column.Index rather than maintaining a chunk buffer per
// column; the chunked GeneralRowReader below is the general case.
type RowReader struct {
	cols   []column.IndexColumn
	height int
	cursor int
}

// NewRowReader builds a row reader over cols, all of which must be
// categorical (implement column.IndexColumn).
func NewRowReader(cols []column.Column) (*RowReader, error) {
	if cols == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewRowReader: cols is nil")
	}
	idxCols := make([]column.IndexColumn, len(cols))
	height := 0
	for j, c := range cols {
		if c == nil {
			return nil, ctableerr.New(ctableerr.NullError, "NewRowReader: column %d is nil", j)
		}
		ic, ok := c.(column.IndexColumn)
		if !ok || c.Category() != column.CategoryCategorical {
			return nil, ctableerr.New(ctableerr.UnsupportedOperation, "NewRowReader: column %d is not CATEGORICAL", j)
		}
		idxCols[j] = ic
		if j == 0 {
			height = c.Size()
		}
	}
	return &RowReader{cols: idxCols, height: height, cursor: BeforeFirst}, nil
}

func (r *RowReader) Width() int    { return len(r.cols) }
func (r *RowReader) Position() int { return r.cursor }

func (r *RowReader) Remaining() int {
	rem := r.height - (r.cursor + 1)
	if rem < 0 {
		rem = 0
	}
	return rem
}

func (r *RowReader) HasRemaining() bool { return r.Remaining() > 0 }

func (r *RowReader) Move() error {
	if !r.HasRemaining() {
		return ctableerr.New(ctableerr.IndexError, "Move: no rows remaining")
	}
	r.cursor++
	return nil
}

func (r *RowReader) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}
	r.cursor = p
	return nil
}

func (r *RowReader) checkColumn(j int) error {
	if j < 0 || j >= len(r.cols) {
		return ctableerr.New(ctableerr.IndexError, "column index %d out of range [0,%d)", j, len(r.cols))
	}
	if r.cursor < 0 || r.cursor >= r.height {
		return ctableerr.New(ctableerr.IndexError, "no current row (position %d)", r.cursor)
	}
	return nil
}

// GetNumeric returns the numeric view (dictionary index, or NaN for
// missing) of column j at the current row.
func (r *RowReader) GetNumeric(j int) (float64, error) {
	if err := r.checkColumn(j); err != nil {
		return 0, err
	}
	dst := make([]float64, 1)
	if err := r.cols[j].FillNumeric(dst, r.cursor, 0, 1); err != nil {
		return 0, err
	}
	return dst[0], nil
}

// GetIndex returns the dictionary index of column j at the current row.
func (r *RowReader) GetIndex(j int) (int, error) {
	if err := r.checkColumn(j); err != nil {
		return 0, err
	}
	return r.cols[j].Index(r.cursor), nil
}

// GetObject returns the dictionary value of column j at the current row.
func (r *RowReader) GetObject(j int) (any, error) {
	if err := r.checkColumn(j); err != nil {
		return nil, err
	}
	dst := make([]any, 1)
	if err := r.cols[j].FillObject(dst, r.cursor, 0, 1); err != nil {
		return nil, err
	}
	return dst[0], nil
}

func (r *RowReader) String() string {
	return fmt.Sprintf("Row reader (%dx%d)\nRow position: %d", r.height, len(r.cols), r.cursor)
}
