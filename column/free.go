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

	"github.com/colplane/ctable/ctableerr"
)

// freeColumn stores a boxed slot per row with no dictionary and no
// dense numeric backing: its numeric view is always NaN (missing or
// not) and its object view is the stored reference, or nil.
type freeColumn struct {
	data []any
}

// NewFreeColumn wraps data (not copied) as an immutable free/object
// column.
func NewFreeColumn(data []any) Column {
	return &freeColumn{data: data}
}

func (c *freeColumn) Size() int          { return len(c.data) }
func (c *freeColumn) Type() Type         { return TypeFree }
func (c *freeColumn) Category() Category { return CategoryFree }

func (c *freeColumn) Capabilities() Capability {
	return ObjectReadable
}

func (c *freeColumn) FillNumeric(dst []float64, startRow, dstOffset, stride int) error {
	n, err := fillRange(len(c.data), startRow, dstOffset, len(dst), stride)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		dst[dstOffset+i*stride] = math.NaN()
	}
	return nil
}

func (c *freeColumn) FillObject(dst []any, startRow, dstOffset, stride int) error {
	n, err := fillRange(len(c.data), startRow, dstOffset, len(dst), stride)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		dst[dstOffset+i*stride] = c.data[startRow+i]
	}
	return nil
}

func (c *freeColumn) Dictionary() ([]any, error) {
	return nil, ctableerr.New(ctableerr.UnsupportedOperation, "Dictionary: FREE column has no dictionary")
}

func (c *freeColumn) IntData() ([]int, error) {
	return nil, ctableerr.New(ctableerr.UnsupportedOperation, "IntData: FREE column has no index stream")
}
