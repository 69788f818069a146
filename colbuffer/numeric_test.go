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
	"testing"

	"github.com/colplane/ctable/column"
)

func TestFixedRealBufferSetGet(t *testing.T) {
	b := NewRealBuffer(4)
	if err := b.SetFloat64(0, 3.25); err != nil {
		t.Fatal(err)
	}
	if got := b.GetFloat64(0); got != 3.25 {
		t.Errorf("Get(0) = %v, want 3.25", got)
	}
}

func TestFixedIntegerBufferRounds(t *testing.T) {
	b := NewIntegerBuffer(2)
	if err := b.SetFloat64(0, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFloat64(1, -0.5); err != nil {
		t.Fatal(err)
	}
	if got := b.GetFloat64(0); got != 1 {
		t.Errorf("Get(0) = %v, want 1", got)
	}
	if got := b.GetFloat64(1); got != 0 {
		t.Errorf("Get(1) = %v, want 0", got)
	}
}

func TestNumericBufferFreezeRejectsWrites(t *testing.T) {
	b := NewRealBuffer(1)
	b.Freeze()
	if err := b.SetFloat64(0, 1); err == nil {
		t.Fatal("expected error writing to frozen buffer")
	}
	if !b.Frozen() {
		t.Fatal("expected Frozen() true")
	}
}

func TestGrowingRealBufferResize(t *testing.T) {
	b := NewGrowingRealBuffer(2)
	b.SetFloat64(0, 1)
	b.SetFloat64(1, 2)
	if err := b.Resize(4); err != nil {
		t.Fatal(err)
	}
	if b.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", b.Size())
	}
	if got := b.GetFloat64(0); got != 1 {
		t.Errorf("Get(0) = %v, want 1 (preserved across grow)", got)
	}
	if got := b.GetFloat64(3); got != 0 {
		t.Errorf("Get(3) = %v, want 0 (zero-extended)", got)
	}
	if err := b.Resize(1); err != nil {
		t.Fatal(err)
	}
	if b.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", b.Size())
	}
}

func TestGrowingBufferResizeNegative(t *testing.T) {
	b := NewGrowingRealBuffer(2)
	if err := b.Resize(-1); err == nil {
		t.Fatal("expected error for negative resize")
	}
}

func TestNumericBufferToColumn(t *testing.T) {
	b := NewRealBuffer(3)
	b.SetFloat64(0, 1)
	b.SetFloat64(1, 2)
	b.SetFloat64(2, 3)
	col, err := b.ToColumn(column.TypeNumeric)
	if err != nil {
		t.Fatal(err)
	}
	if col.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", col.Size())
	}
	if !b.Frozen() {
		t.Fatal("expected buffer frozen after ToColumn")
	}
}

func TestNumericBufferToColumnWrongCategory(t *testing.T) {
	b := NewRealBuffer(1)
	if _, err := b.ToColumn(column.TypeCategorical); err == nil {
		t.Fatal("expected error converting numeric buffer to categorical column")
	}
}

func TestIntegerBufferString(t *testing.T) {
	b := NewIntegerBuffer(2)
	b.SetFloat64(0, 1)
	b.SetFloat64(1, 2)
	want := "Integer Buffer (2)\n(1, 2)"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
