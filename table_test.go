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

package ctable

import (
	"context"
	"fmt"
	"testing"

	"github.com/colplane/ctable/colbuffer"
	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/exec"
	"github.com/colplane/ctable/packedint"
	"github.com/colplane/ctable/rowio"
	"github.com/colplane/ctable/transform"
)

// cyclicDictColumn builds a 75-row "value0".."value9" cyclic
// categorical column, the shared fixture for the worked end-to-end
// scenarios below.
func cyclicDictColumn(t *testing.T) column.Column {
	t.Helper()
	buf := colbuffer.NewCategoricalBuffer(packedint.U8, 75)
	for i := 0; i < 75; i++ {
		if err := buf.Set(i, fmt.Sprintf("value%d", i%10)); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
	}
	col, err := buf.ToColumn(column.TypeCategorical)
	if err != nil {
		t.Fatalf("ToColumn: %v", err)
	}
	return col
}

func newTestTable(t *testing.T, height int, labels []string, cols []column.Column) (*Table, exec.ThreadPool) {
	t.Helper()
	pool := exec.NewThreadPool(4)
	t.Cleanup(func() { pool.Close(); pool.Wait() })
	b := NewBuilder(height)
	for i, label := range labels {
		b.Add(label, cols[i])
	}
	tbl, err := b.Build(pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tbl, pool
}

func TestTableSumOfDictionaryIndices(t *testing.T) {
	col := cyclicDictColumn(t)
	tbl, _ := newTestTable(t, 75, []string{"v"}, []column.Column{col})

	single, err := tbl.Transform("v")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	sum, err := transform.ReduceCategorical(context.Background(), single, 0,
		func(a, idx int) int { return a + idx },
		func(l, r int) int { return l + r },
		exec.Large)
	if err != nil {
		t.Fatalf("ReduceCategorical: %v", err)
	}
	if sum != 400 {
		t.Fatalf("sum = %d, want 400", sum)
	}
}

func TestTableCountAboveTwo(t *testing.T) {
	col := cyclicDictColumn(t)
	tbl, _ := newTestTable(t, 75, []string{"v"}, []column.Column{col})

	single, err := tbl.Transform("v")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	count, err := transform.ReduceCategorical(context.Background(), single, 0,
		func(c, idx int) int {
			if idx > 2 {
				return c + 1
			}
			return c
		},
		func(l, r int) int { return l + r },
		exec.Large)
	if err != nil {
		t.Fatalf("ReduceCategorical: %v", err)
	}
	if count != 59 {
		t.Fatalf("count = %d, want 59", count)
	}
}

func TestTableRowReducerOverThreeColumns(t *testing.T) {
	cols := []column.Column{cyclicDictColumn(t), cyclicDictColumn(t), cyclicDictColumn(t)}
	tbl, _ := newTestTable(t, 75, []string{"a", "b", "c"}, cols)

	multi, err := tbl.TransformMulti("a", "b", "c")
	if err != nil {
		t.Fatalf("TransformMulti: %v", err)
	}
	type acc struct{ v float64 }
	sum, err := transform.ReduceCategorical[*acc](context.Background(), multi,
		func() (*acc, error) { return &acc{}, nil },
		func(a *acc, row rowio.Row) error {
			i0, err := row.GetIndex(0)
			if err != nil {
				return err
			}
			i1, err := row.GetIndex(1)
			if err != nil {
				return err
			}
			i2, err := row.GetIndex(2)
			if err != nil {
				return err
			}
			a.v += float64(i0 + i1 + i2)
			return nil
		},
		func(l, r *acc) error { l.v += r.v; return nil },
		exec.Large)
	if err != nil {
		t.Fatalf("ReduceCategorical: %v", err)
	}
	if sum.v != 1200 {
		t.Fatalf("sum = %v, want 1200", sum.v)
	}
}

func TestTableApplyNumericIdentity(t *testing.T) {
	numBuf := colbuffer.NewRealBuffer(3)
	for i, v := range []float64{0.0, 0.5, 1.0} {
		if err := numBuf.Set(i, v); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
	}
	col, err := numBuf.ToColumn(column.TypeNumeric)
	if err != nil {
		t.Fatalf("ToColumn: %v", err)
	}
	tbl, _ := newTestTable(t, 3, []string{"n"}, []column.Column{col})

	single, err := tbl.Transform("n")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	out, err := transform.ApplyNumeric(context.Background(), single, func(v float64) (float64, error) { return v, nil }, exec.Default)
	if err != nil {
		t.Fatalf("ApplyNumeric: %v", err)
	}
	want := []string{"x0", "x0.5", "x1"}
	for i, v := range out {
		got := fmt.Sprintf("x%v", v)
		if got != want[i] {
			t.Fatalf("row %d: got %q, want %q", i, got, want[i])
		}
	}
}

func TestTableHeightMismatchRejected(t *testing.T) {
	a := cyclicDictColumn(t)
	small := colbuffer.NewRealBuffer(3)
	smallCol, err := small.ToColumn(column.TypeNumeric)
	if err != nil {
		t.Fatalf("ToColumn: %v", err)
	}

	pool := exec.NewThreadPool(1)
	defer func() { pool.Close(); pool.Wait() }()

	b := NewBuilder(75).Add("a", a).Add("small", smallCol)
	if _, err := b.Build(pool); err == nil {
		t.Fatal("Build: want error for height mismatch, got nil")
	}
}

func TestTableLabelsAndResolution(t *testing.T) {
	col := cyclicDictColumn(t)
	tbl, _ := newTestTable(t, 75, []string{"v"}, []column.Column{col})

	if got, want := tbl.Height(), 75; got != want {
		t.Fatalf("Height() = %d, want %d", got, want)
	}
	if got, want := tbl.Width(), 1; got != want {
		t.Fatalf("Width() = %d, want %d", got, want)
	}
	if got := tbl.Labels(); len(got) != 1 || got[0] != "v" {
		t.Fatalf("Labels() = %v", got)
	}
	if _, err := tbl.ColumnByLabel("missing"); err == nil {
		t.Fatal("ColumnByLabel(missing): want error, got nil")
	}
	if _, err := tbl.Column(5); err == nil {
		t.Fatal("Column(5): want index-error, got nil")
	}
}
