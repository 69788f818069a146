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

package transform

import (
	"context"

	"github.com/colplane/ctable/calc"
	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
	"github.com/colplane/ctable/exec"
	"github.com/colplane/ctable/rowio"
)

// defaultDesiredRows is the scratch budget handed to GeneralRowReader
// when a caller does not have a sharper estimate; rowio divides it
// evenly across the projected columns.
const defaultDesiredRows = 4096

// Multi is the multi-column transformer façade over a fixed projection
// of columns (built by Table.TransformMulti).
type Multi struct {
	cols   []column.Column
	pool   exec.ThreadPool
	height int
}

// NewMulti builds a façade over cols, all of which must share the same
// row count.
func NewMulti(cols []column.Column, pool exec.ThreadPool) (*Multi, error) {
	if cols == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewMulti: cols is nil")
	}
	if pool == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewMulti: pool is nil")
	}
	height := 0
	if len(cols) > 0 {
		height = cols[0].Size()
	}
	for j, c := range cols {
		if c == nil {
			return nil, ctableerr.New(ctableerr.NullError, "NewMulti: column %d is nil", j)
		}
		if c.Size() != height {
			return nil, ctableerr.New(ctableerr.ArgumentError, "NewMulti: column %d has size %d, want %d", j, c.Size(), height)
		}
	}
	return &Multi{cols: cols, pool: pool, height: height}, nil
}

func (t *Multi) generalReader() (calc.MovableRow, error) {
	return rowio.NewGeneralRowReader(t.cols, defaultDesiredRows)
}

func (t *Multi) categoricalReader() (calc.MovableRow, error) {
	return rowio.NewRowReader(t.cols)
}

// ReduceGeneral folds rows via a heterogeneous GeneralRowReader: the
// reducer sees getNumeric/getIndex/getObject gated by each column's
// own capabilities.
func ReduceGeneral[A any](ctx context.Context, t *Multi, supplier func() (A, error), reduce func(acc A, row rowio.Row) error, combine func(left, right A) error, hint exec.WorkloadHint) (A, error) {
	var zero A
	if ctx == nil {
		return zero, ctableerr.New(ctableerr.NullError, "ctx must not be nil")
	}
	if err := requireNonNilFunc(supplier, "supplier"); err != nil {
		return zero, err
	}
	if err := requireNonNilFunc(reduce, "reducer"); err != nil {
		return zero, err
	}
	r, err := calc.NewRowReducer(t.height, supplier, t.generalReader, reduce, combine)
	if err != nil {
		return zero, err
	}
	e, err := exec.NewExecutor(t.pool)
	if err != nil {
		return zero, err
	}
	return exec.Run[A](ctx, e, r, hint)
}

// Reduce is the default multi-column reducer; it is ReduceGeneral
// under another name, kept distinct so callers that only ever target
// CATEGORICAL projections can migrate to ReduceCategorical without an
// API shape change.
func Reduce[A any](ctx context.Context, t *Multi, supplier func() (A, error), reduce func(acc A, row rowio.Row) error, combine func(left, right A) error, hint exec.WorkloadHint) (A, error) {
	return ReduceGeneral(ctx, t, supplier, reduce, combine, hint)
}

// ReduceCategorical folds rows via the lighter categorical-only
// RowReader; every projected column must be CATEGORICAL.
func ReduceCategorical[A any](ctx context.Context, t *Multi, supplier func() (A, error), reduce func(acc A, row rowio.Row) error, combine func(left, right A) error, hint exec.WorkloadHint) (A, error) {
	var zero A
	if ctx == nil {
		return zero, ctableerr.New(ctableerr.NullError, "ctx must not be nil")
	}
	if err := requireNonNilFunc(supplier, "supplier"); err != nil {
		return zero, err
	}
	if err := requireNonNilFunc(reduce, "reducer"); err != nil {
		return zero, err
	}
	for j, c := range t.cols {
		if c.Category() != column.CategoryCategorical {
			return zero, ctableerr.New(ctableerr.UnsupportedOperation, "ReduceCategorical: column %d is not CATEGORICAL", j)
		}
	}
	r, err := calc.NewRowReducer(t.height, supplier, t.categoricalReader, reduce, combine)
	if err != nil {
		return zero, err
	}
	e, err := exec.NewExecutor(t.pool)
	if err != nil {
		return zero, err
	}
	return exec.Run[A](ctx, e, r, hint)
}

// ApplyRow maps every row through mapFn, which sees a Row view, into a
// fresh slice.
func ApplyRow[E any](ctx context.Context, t *Multi, mapFn func(row rowio.Row) (E, error), hint exec.WorkloadHint) ([]E, error) {
	if ctx == nil {
		return nil, ctableerr.New(ctableerr.NullError, "ctx must not be nil")
	}
	if err := requireNonNilFunc(mapFn, "mapFn"); err != nil {
		return nil, err
	}
	a, err := calc.NewRowApplier(t.height, t.generalReader, mapFn)
	if err != nil {
		return nil, err
	}
	e, err := exec.NewExecutor(t.pool)
	if err != nil {
		return nil, err
	}
	return exec.Run[[]E](ctx, e, a, hint)
}
