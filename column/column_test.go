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
	"testing"

	"github.com/colplane/ctable/ints"
	"github.com/colplane/ctable/packedint"
)

// randomFloats fills n float64s from cryptographically random int32
// content, using ints.RandomFillSlice the same way a fuzz-style
// property test would generate arbitrary fixture content without a
// seeded PRNG.
func randomFloats(t *testing.T, n int) []float64 {
	t.Helper()
	raw := make([]int32, n)
	if err := ints.RandomFillSlice(raw); err != nil {
		t.Fatalf("RandomFillSlice: %v", err)
	}
	out := make([]float64, n)
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out
}

func TestNumericColumnFillRoundTrip(t *testing.T) {
	data := randomFloats(t, 200)
	col := NewNumericColumn(append([]float64(nil), data...))

	for _, start := range []int{0, 1, 50, 199} {
		dst := make([]float64, col.Size()-start)
		if err := col.FillNumeric(dst, start, 0, 1); err != nil {
			t.Fatalf("FillNumeric(start=%d): %v", start, err)
		}
		for i, v := range dst {
			if v != data[start+i] {
				t.Fatalf("start=%d: dst[%d] = %v, want %v", start, i, v, data[start+i])
			}
		}
	}
}

func TestNumericColumnFillPastEndLeavesTailUntouched(t *testing.T) {
	col := NewNumericColumn([]float64{1, 2, 3})
	sentinel := 12345.0
	dst := []float64{sentinel, sentinel, sentinel, sentinel, sentinel}
	if err := col.FillNumeric(dst, 1, 0, 1); err != nil {
		t.Fatal(err)
	}
	if dst[0] != 2 || dst[1] != 3 {
		t.Fatalf("dst[:2] = %v, want [2 3]", dst[:2])
	}
	for i := 2; i < len(dst); i++ {
		if dst[i] != sentinel {
			t.Fatalf("dst[%d] = %v, want untouched sentinel %v", i, dst[i], sentinel)
		}
	}
}

func TestCategoricalColumnIndexAndObjectViews(t *testing.T) {
	arr := packedint.NewArray(packedint.U8, 5)
	for i, idx := range []int{0, 1, 2, 1, 0} {
		arr.Set(i, idx)
	}
	dict := NewDictionary([]any{nil, "a", "b"})
	col := NewCategoricalColumn(arr, dict)

	ic, ok := col.(IndexColumn)
	if !ok {
		t.Fatal("categorical column does not satisfy IndexColumn")
	}
	for i, want := range []int{0, 1, 2, 1, 0} {
		if got := ic.Index(i); got != want {
			t.Errorf("Index(%d) = %d, want %d", i, got, want)
		}
		if got := ic.Index(i); got < 0 || got >= dict.Size() {
			t.Errorf("Index(%d) = %d out of [0,%d)", i, got, dict.Size())
		}
	}

	objs := make([]any, 5)
	if err := col.FillObject(objs, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	want := []any{nil, "a", "b", "a", nil}
	for i := range want {
		if objs[i] != want[i] {
			t.Errorf("FillObject()[%d] = %v, want %v", i, objs[i], want[i])
		}
	}

	nums := make([]float64, 5)
	if err := col.FillNumeric(nums, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(nums[0]) || nums[1] != 1 || nums[2] != 2 || nums[3] != 1 || !math.IsNaN(nums[4]) {
		t.Fatalf("FillNumeric() = %v, want [NaN 1 2 1 NaN]", nums)
	}
}

func TestFreeColumnMissingViews(t *testing.T) {
	col := NewFreeColumn([]any{"x", nil, 42})

	objs := make([]any, 3)
	if err := col.FillObject(objs, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if objs[0] != "x" || objs[1] != nil || objs[2] != 42 {
		t.Fatalf("FillObject() = %v", objs)
	}

	nums := make([]float64, 3)
	if err := col.FillNumeric(nums, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	for i, v := range nums {
		if !math.IsNaN(v) {
			t.Errorf("FillNumeric()[%d] = %v, want NaN", i, v)
		}
	}
}

func TestZeroLengthColumnsAreLegal(t *testing.T) {
	for _, col := range []Column{
		NewNumericColumn(nil),
		NewFreeColumn(nil),
		NewCategoricalColumn(packedint.NewArray(packedint.U8, 0), NewDictionary([]any{nil})),
	} {
		if col.Size() != 0 {
			t.Errorf("%T: Size() = %d, want 0", col, col.Size())
		}
	}
}

func TestCapabilitiesBitset(t *testing.T) {
	if !NumericReadable.Has(NumericReadable) {
		t.Fatal("NumericReadable does not have itself")
	}
	combined := NumericReadable | ObjectReadable
	if !combined.Has(NumericReadable) || !combined.Has(ObjectReadable) {
		t.Fatal("combined capability lost a flag")
	}
	if combined.Has(Sortable) {
		t.Fatal("combined capability unexpectedly has Sortable")
	}
}
