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

// Package column defines the immutable, read-side columnar storage layer:
// the Column interface, its capability bitset, and the concrete storage
// families (numeric, categorical, free, date-time, time) that back it.
// A Column is produced by freezing a colbuffer.Buffer; once built, it is
// safe for concurrent readers and never mutates.
package column

import "github.com/colplane/ctable/ctableerr"

// Type is the column's declared element type. Several Types share a
// storage Category: TypeNumeric, TypeDateTime, and TypeTime are all
// backed by a dense []float64.
type Type uint8

const (
	TypeNumeric Type = iota
	TypeCategorical
	TypeFree
	TypeDateTime
	TypeTime
)

func (t Type) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeCategorical:
		return "categorical"
	case TypeFree:
		return "free"
	case TypeDateTime:
		return "date-time"
	case TypeTime:
		return "time"
	default:
		return "type(?)"
	}
}

// Category is the column's storage family.
type Category uint8

const (
	CategoryNumeric Category = iota
	CategoryCategorical
	CategoryFree
)

func (c Category) String() string {
	switch c {
	case CategoryNumeric:
		return "NUMERIC"
	case CategoryCategorical:
		return "CATEGORICAL"
	case CategoryFree:
		return "FREE"
	default:
		return "CATEGORY(?)"
	}
}

// CategoryOf reports the storage family a declared Type uses.
func CategoryOf(t Type) Category {
	switch t {
	case TypeCategorical:
		return CategoryCategorical
	case TypeFree:
		return CategoryFree
	default: // TypeNumeric, TypeDateTime, TypeTime
		return CategoryNumeric
	}
}

// Capability flags which views a Column supports.
type Capability uint8

const (
	NumericReadable Capability = 1 << iota
	ObjectReadable
	Sortable
)

// Has reports whether all bits of want are set in c.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Column is immutable, bulk-fillable, read-side columnar storage.
type Column interface {
	// Size reports the number of rows.
	Size() int
	// Type reports the declared element type.
	Type() Type
	// Category reports the storage family.
	Category() Category
	// Capabilities reports which views this column supports.
	Capabilities() Capability

	// FillNumeric bulk-copies the numeric view of consecutive rows
	// starting at startRow into dst, writing one value into each
	// stride-separated slot of dst from dstOffset through the end of
	// dst. Rows past Size() stop the copy early; untouched slots of
	// dst are left as they were. A column that is not NumericReadable
	// (a free column) writes NaN for every copied row.
	FillNumeric(dst []float64, startRow, dstOffset, stride int) error

	// FillObject is the object-view analogue of FillNumeric. Returns
	// unsupported-operation if the column is not ObjectReadable.
	FillObject(dst []any, startRow, dstOffset, stride int) error

	// Dictionary returns the ordered dictionary values (index 0 is the
	// missing sentinel, nil). Returns unsupported-operation for
	// non-categorical columns.
	Dictionary() ([]any, error)

	// IntData returns the unpacked raw index stream. Returns
	// unsupported-operation for non-categorical columns.
	IntData() ([]int, error)
}

// fillRange computes how many (startRow+i) rows can actually be copied
// given the column's size and the caller's stride/dst length, and
// validates stride/size arguments.
func fillRange(size, startRow, dstOffset, dstLen, stride int) (count int, err error) {
	if stride <= 0 {
		return 0, ctableerr.New(ctableerr.ArgumentError, "fill: stride must be positive, got %d", stride)
	}
	if startRow < 0 {
		return 0, ctableerr.New(ctableerr.IndexError, "fill: negative startRow %d", startRow)
	}
	want := (dstLen - dstOffset + stride - 1) / stride
	if want < 0 {
		want = 0
	}
	avail := size - startRow
	if avail < 0 {
		avail = 0
	}
	if want < avail {
		return want, nil
	}
	return avail, nil
}
