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

package colbuffer

import (
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
)

// numericCore is the shared storage and lifecycle state for all four
// numeric buffer flavors (fixed real, fixed integer, growing real,
// growing integer); only rounding behavior and resizability differ
// between them.
type numericCore struct {
	data   []float64
	frozen atomic.Bool
	round  bool
}

func (b *numericCore) Size() int { return len(b.data) }

func (b *numericCore) Get(i int) any { return b.data[i] }

func (b *numericCore) GetFloat64(i int) float64 { return b.data[i] }

func (b *numericCore) set(i int, v float64) error {
	if b.frozen.Load() {
		return ctableerr.New(ctableerr.StateError, "Set: buffer is frozen")
	}
	if b.round {
		v = roundHalfUp(v)
	}
	b.data[i] = v
	return nil
}

func (b *numericCore) Set(i int, v any) error {
	f, ok := toFloat64(v)
	if !ok {
		return ctableerr.New(ctableerr.ArgumentError, "Set: %v is not numeric", v)
	}
	return b.set(i, f)
}

func (b *numericCore) SetFloat64(i int, v float64) error { return b.set(i, v) }

func (b *numericCore) Freeze() { b.frozen.Store(true) }

func (b *numericCore) Frozen() bool { return b.frozen.Load() }

func (b *numericCore) resize(n int) error {
	if b.frozen.Load() {
		return ctableerr.New(ctableerr.StateError, "Resize: buffer is frozen")
	}
	if err := negativeSizeError(n); err != nil {
		return err
	}
	if n <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:n]
		for i := old; i < n; i++ {
			b.data[i] = 0
		}
		return nil
	}
	grown := make([]float64, n)
	copy(grown, b.data)
	b.data = grown
	return nil
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

// FixedRealBuffer is f64[n] storage with no rounding and no resizing.
type FixedRealBuffer struct{ numericCore }

// NewRealBuffer allocates a fixed real buffer of n zero-valued slots.
func NewRealBuffer(n int) *FixedRealBuffer {
	return &FixedRealBuffer{numericCore{data: make([]float64, n)}}
}

func (b *FixedRealBuffer) ToColumn(t column.Type) (column.Column, error) {
	return toNumericColumn(&b.numericCore, t)
}

func (b *FixedRealBuffer) String() string {
	return bufferString("Real", b.Size(), func(i int) string { return formatReal(b.data[i]) })
}

// FixedIntegerBuffer is f64[n] storage where every write is rounded
// per roundHalfUp before being stored.
type FixedIntegerBuffer struct{ numericCore }

// NewIntegerBuffer allocates a fixed integer buffer of n zero-valued
// slots.
func NewIntegerBuffer(n int) *FixedIntegerBuffer {
	return &FixedIntegerBuffer{numericCore{data: make([]float64, n), round: true}}
}

func (b *FixedIntegerBuffer) ToColumn(t column.Type) (column.Column, error) {
	return toNumericColumn(&b.numericCore, t)
}

func (b *FixedIntegerBuffer) String() string {
	return bufferString("Integer", b.Size(), func(i int) string { return formatInteger(b.data[i]) })
}

// GrowingRealBuffer is a resizable fixed-width real buffer.
type GrowingRealBuffer struct{ numericCore }

// NewGrowingRealBuffer allocates a growing real buffer of n
// zero-valued slots.
func NewGrowingRealBuffer(n int) *GrowingRealBuffer {
	return &GrowingRealBuffer{numericCore{data: make([]float64, n)}}
}

func (b *GrowingRealBuffer) Resize(n int) error { return b.resize(n) }

func (b *GrowingRealBuffer) ToColumn(t column.Type) (column.Column, error) {
	return toNumericColumn(&b.numericCore, t)
}

func (b *GrowingRealBuffer) String() string {
	return bufferString("Real", b.Size(), func(i int) string { return formatReal(b.data[i]) })
}

// GrowingIntegerBuffer is a resizable fixed-width integer buffer;
// writes are rounded per roundHalfUp.
type GrowingIntegerBuffer struct{ numericCore }

// NewGrowingIntegerBuffer allocates a growing integer buffer of n
// zero-valued slots.
func NewGrowingIntegerBuffer(n int) *GrowingIntegerBuffer {
	return &GrowingIntegerBuffer{numericCore{data: make([]float64, n), round: true}}
}

func (b *GrowingIntegerBuffer) Resize(n int) error { return b.resize(n) }

func (b *GrowingIntegerBuffer) ToColumn(t column.Type) (column.Column, error) {
	return toNumericColumn(&b.numericCore, t)
}

func (b *GrowingIntegerBuffer) String() string {
	return bufferString("Integer", b.Size(), func(i int) string { return formatInteger(b.data[i]) })
}

// toNumericColumn freezes core and seals it into the numeric-family
// column matching t (TypeNumeric, TypeDateTime, or TypeTime all share
// the f64 dense store). The frozen slice is cloned so a subsequent
// Resize on a growing buffer (impossible post-freeze, but defensively)
// can never alias the column's backing array.
func toNumericColumn(core *numericCore, t column.Type) (column.Column, error) {
	if column.CategoryOf(t) != column.CategoryNumeric {
		return nil, ctableerr.New(ctableerr.ArgumentError, "ToColumn: type %s is not numeric-category", t)
	}
	core.Freeze()
	data := slices.Clone(core.data)
	switch t {
	case column.TypeDateTime:
		return column.NewDateTimeColumn(data), nil
	case column.TypeTime:
		return column.NewTimeColumn(data), nil
	default:
		return column.NewNumericColumn(data), nil
	}
}
