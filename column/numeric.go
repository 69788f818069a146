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
	"github.com/colplane/ctable/ctableerr"
	"github.com/colplane/ctable/date"
)

// numericColumn backs TypeNumeric, TypeDateTime, and TypeTime: all three
// share a dense []float64 store. TypeDateTime and TypeTime additionally
// expose an object view by converting each float64 to a date.Time.
type numericColumn struct {
	typ  Type
	data []float64
}

// NewNumericColumn wraps data (not copied) as an immutable numeric
// column. Ownership of data transfers to the returned Column.
func NewNumericColumn(data []float64) Column {
	return &numericColumn{typ: TypeNumeric, data: data}
}

// NewDateTimeColumn wraps data, interpreted as seconds since the Unix
// epoch (see date.FromSeconds), as an immutable date-time column.
func NewDateTimeColumn(data []float64) Column {
	return &numericColumn{typ: TypeDateTime, data: data}
}

// NewTimeColumn wraps data, interpreted as seconds since the Unix epoch,
// as an immutable time-of-day column.
func NewTimeColumn(data []float64) Column {
	return &numericColumn{typ: TypeTime, data: data}
}

func (c *numericColumn) Size() int     { return len(c.data) }
func (c *numericColumn) Type() Type    { return c.typ }
func (c *numericColumn) Category() Category { return CategoryNumeric }

func (c *numericColumn) Capabilities() Capability {
	caps := NumericReadable | Sortable
	if c.typ == TypeDateTime || c.typ == TypeTime {
		caps |= ObjectReadable
	}
	return caps
}

func (c *numericColumn) FillNumeric(dst []float64, startRow, dstOffset, stride int) error {
	n, err := fillRange(len(c.data), startRow, dstOffset, len(dst), stride)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		dst[dstOffset+i*stride] = c.data[startRow+i]
	}
	return nil
}

func (c *numericColumn) FillObject(dst []any, startRow, dstOffset, stride int) error {
	if !c.Capabilities().Has(ObjectReadable) {
		return ctableerr.New(ctableerr.UnsupportedOperation, "FillObject: %s column is not ObjectReadable", c.typ)
	}
	n, err := fillRange(len(c.data), startRow, dstOffset, len(dst), stride)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		dst[dstOffset+i*stride] = date.FromSeconds(c.data[startRow+i])
	}
	return nil
}

func (c *numericColumn) Dictionary() ([]any, error) {
	return nil, ctableerr.New(ctableerr.UnsupportedOperation, "Dictionary: %s column is not CATEGORICAL", c.typ)
}

func (c *numericColumn) IntData() ([]int, error) {
	return nil, ctableerr.New(ctableerr.UnsupportedOperation, "IntData: %s column is not CATEGORICAL", c.typ)
}
