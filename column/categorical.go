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

package column

import (
	"math"

	"github.com/colplane/ctable/packedint"
)

// categoricalColumn stores one packed index per row into a shared,
// frozen Dictionary. Index 0 always means "missing".
type categoricalColumn struct {
	indices *packedint.Array
	dict    *Dictionary
}

// NewCategoricalColumn wraps indices and dict (not copied) as an
// immutable categorical column. Every index must lie in
// [0, dict.Size()); callers (colbuffer) are responsible for that
// invariant since it is enforced at write time, not here.
func NewCategoricalColumn(indices *packedint.Array, dict *Dictionary) Column {
	return &categoricalColumn{indices: indices, dict: dict}
}

func (c *categoricalColumn) Size() int          { return c.indices.Len() }
func (c *categoricalColumn) Type() Type         { return TypeCategorical }
func (c *categoricalColumn) Category() Category { return CategoryCategorical }

func (c *categoricalColumn) Capabilities() Capability {
	return NumericReadable | ObjectReadable | Sortable
}

func (c *categoricalColumn) FillNumeric(dst []float64, startRow, dstOffset, stride int) error {
	n, err := fillRange(c.Size(), startRow, dstOffset, len(dst), stride)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		idx := c.indices.Get(startRow + i)
		if idx == 0 {
			dst[dstOffset+i*stride] = math.NaN()
		} else {
			dst[dstOffset+i*stride] = float64(idx)
		}
	}
	return nil
}

func (c *categoricalColumn) FillObject(dst []any, startRow, dstOffset, stride int) error {
	n, err := fillRange(c.Size(), startRow, dstOffset, len(dst), stride)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		idx := c.indices.Get(startRow + i)
		dst[dstOffset+i*stride] = c.dict.At(idx)
	}
	return nil
}

func (c *categoricalColumn) Dictionary() ([]any, error) {
	return c.dict.Values(), nil
}

func (c *categoricalColumn) IntData() ([]int, error) {
	out := make([]int, c.Size())
	for i := range out {
		out[i] = c.indices.Get(i)
	}
	return out, nil
}

// IndexColumn is satisfied by columns that expose a raw per-row
// dictionary index lookup (currently only categorical columns). Used
// by calc's categorical-specialized reducer and by rowio's RowReader to
// avoid the NaN round trip FillNumeric imposes for rows already known
// to be categorical.
type IndexColumn interface {
	Column
	Index(i int) int
}

func (c *categoricalColumn) Index(i int) int { return c.indices.Get(i) }
