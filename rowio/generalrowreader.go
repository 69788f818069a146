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
	"math"

	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
)

// GeneralRowReader is a multi-column cursor over columns of any mix of
// capabilities. It keeps a numeric chunk buffer for every
// NumericReadable column and an object chunk buffer for every
// ObjectReadable column; a categorical column that satisfies both
// holds both.
type GeneralRowReader struct {
	cols   []column.Column
	height int
	cursor int

	numBuf    [][]float64
	numBase   []int
	numLoaded []bool
	objBuf    [][]any
	objBase   []int
	objLoaded []bool
}

// NewGeneralRowReader builds a reader over cols with a total scratch
// budget of approximately desiredRows rows, split evenly across the
// columns.
func NewGeneralRowReader(cols []column.Column, desiredRows int) (*GeneralRowReader, error) {
	if cols == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewGeneralRowReader: cols is nil")
	}
	for j, c := range cols {
		if c == nil {
			return nil, ctableerr.New(ctableerr.NullError, "NewGeneralRowReader: column %d is nil", j)
		}
	}
	width := len(cols)
	b := chunkSizeFor(desiredRows, width)
	height := 0
	if width > 0 {
		height = cols[0].Size()
	}

	r := &GeneralRowReader{
		cols:      cols,
		height:    height,
		cursor:    BeforeFirst,
		numBuf:    make([][]float64, width),
		numBase:   make([]int, width),
		numLoaded: make([]bool, width),
		objBuf:    make([][]any, width),
		objBase:   make([]int, width),
		objLoaded: make([]bool, width),
	}
	for j, c := range cols {
		caps := c.Capabilities()
		if caps.Has(column.NumericReadable) {
			r.numBuf[j] = make([]float64, b)
		}
		if caps.Has(column.ObjectReadable) {
			r.objBuf[j] = make([]any, b)
		}
	}
	return r, nil
}

func (r *GeneralRowReader) Width() int    { return len(r.cols) }
func (r *GeneralRowReader) Position() int { return r.cursor }

func (r *GeneralRowReader) Remaining() int {
	rem := r.height - (r.cursor + 1)
	if rem < 0 {
		rem = 0
	}
	return rem
}

func (r *GeneralRowReader) HasRemaining() bool { return r.Remaining() > 0 }

func (r *GeneralRowReader) Move() error {
	if !r.HasRemaining() {
		return ctableerr.New(ctableerr.IndexError, "Move: no rows remaining")
	}
	r.cursor++
	return nil
}

func (r *GeneralRowReader) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}
	r.cursor = p
	for j := range r.cols {
		r.numLoaded[j] = false
		r.objLoaded[j] = false
	}
	return nil
}

func (r *GeneralRowReader) checkColumn(j int) error {
	if j < 0 || j >= len(r.cols) {
		return ctableerr.New(ctableerr.IndexError, "column index %d out of range [0,%d)", j, len(r.cols))
	}
	if r.cursor < 0 || r.cursor >= r.height {
		return ctableerr.New(ctableerr.IndexError, "no current row (position %d)", r.cursor)
	}
	return nil
}

// GetNumeric returns the numeric view of column j at the current row,
// or NaN if j lacks NumericReadable.
func (r *GeneralRowReader) GetNumeric(j int) (float64, error) {
	if err := r.checkColumn(j); err != nil {
		return 0, err
	}
	buf := r.numBuf[j]
	if buf == nil {
		return math.NaN(), nil
	}
	if !r.numLoaded[j] || r.cursor < r.numBase[j] || r.cursor >= r.numBase[j]+len(buf) {
		if err := r.cols[j].FillNumeric(buf, r.cursor, 0, 1); err != nil {
			return 0, err
		}
		r.numBase[j] = r.cursor
		r.numLoaded[j] = true
	}
	return buf[r.cursor-r.numBase[j]], nil
}

// GetIndex returns the dictionary index of column j at the current
// row, or 0 if j is not categorical.
func (r *GeneralRowReader) GetIndex(j int) (int, error) {
	if err := r.checkColumn(j); err != nil {
		return 0, err
	}
	ic, ok := r.cols[j].(column.IndexColumn)
	if !ok {
		return 0, nil
	}
	return ic.Index(r.cursor), nil
}

// GetObject returns the object view of column j at the current row,
// or nil if j lacks ObjectReadable.
func (r *GeneralRowReader) GetObject(j int) (any, error) {
	if err := r.checkColumn(j); err != nil {
		return nil, err
	}
	buf := r.objBuf[j]
	if buf == nil {
		return nil, nil
	}
	if !r.objLoaded[j] || r.cursor < r.objBase[j] || r.cursor >= r.objBase[j]+len(buf) {
		if err := r.cols[j].FillObject(buf, r.cursor, 0, 1); err != nil {
			return nil, err
		}
		r.objBase[j] = r.cursor
		r.objLoaded[j] = true
	}
	return buf[r.cursor-r.objBase[j]], nil
}

func (r *GeneralRowReader) String() string {
	return fmt.Sprintf("General Row reader (%dx%d)\nRow position: %d", r.height, len(r.cols), r.cursor)
}
