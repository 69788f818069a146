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

// Package transform implements the ergonomic façades (reduce, apply,
// reduceCategorical, reduceGeneral) that sit on top of package calc and
// package exec without adding any logic of their own: they validate
// arguments, pick the right calculator, and hand it to the executor.
package transform

import (
	"context"
	"reflect"

	"github.com/colplane/ctable/calc"
	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
	"github.com/colplane/ctable/exec"
)

// Single is the single-column transformer façade.
type Single struct {
	col  column.Column
	pool exec.ThreadPool
}

// NewSingle builds a façade over col, dispatching work to pool.
func NewSingle(col column.Column, pool exec.ThreadPool) (*Single, error) {
	if col == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewSingle: col is nil")
	}
	if pool == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewSingle: pool is nil")
	}
	return &Single{col: col, pool: pool}, nil
}

func validateReduceArgs(ctx context.Context, reducer, combiner any) error {
	if ctx == nil {
		return ctableerr.New(ctableerr.NullError, "ctx must not be nil")
	}
	if err := requireNonNilFunc(reducer, "reducer"); err != nil {
		return err
	}
	// combiner may legitimately be nil for a caller who will only ever
	// run with a single batch; calc enforces that at Init.
	_ = combiner
	return nil
}

func requireNonNilFunc(fn any, name string) error {
	if fn == nil || (reflect.ValueOf(fn).Kind() == reflect.Func && reflect.ValueOf(fn).IsNil()) {
		return ctableerr.New(ctableerr.NullError, "%s must not be nil", name)
	}
	return nil
}

func readNumericAt(col column.Column, row int) (float64, error) {
	var buf [1]float64
	if err := col.FillNumeric(buf[:], row, 0, 1); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Reduce folds the column's numeric view with (identity, reducer,
// combiner). combiner may be nil only if the executor ends up running
// a single batch.
func Reduce[A any](ctx context.Context, t *Single, identity A, reducer func(acc A, v float64) (A, error), combiner func(left, right A) (A, error), hint exec.WorkloadHint) (A, error) {
	var zero A
	if err := validateReduceArgs(ctx, reducer, combiner); err != nil {
		return zero, err
	}
	if !t.col.Capabilities().Has(column.NumericReadable) {
		return zero, ctableerr.New(ctableerr.UnsupportedOperation, "Reduce: column is not NumericReadable")
	}
	readValue := func(row int) (float64, error) { return readNumericAt(t.col, row) }
	r, err := calc.NewScalarReducer(t.col.Size(), identity, readValue, reducer, combiner)
	if err != nil {
		return zero, err
	}
	e, err := exec.NewExecutor(t.pool)
	if err != nil {
		return zero, err
	}
	return exec.Run[A](ctx, e, r, hint)
}

// ReduceCategorical folds raw dictionary indices with (identity,
// reducer, combiner); col must be CATEGORICAL.
func ReduceCategorical(ctx context.Context, t *Single, identity int, reducer func(acc, idx int) int, combiner func(left, right int) int, hint exec.WorkloadHint) (int, error) {
	if ctx == nil {
		return 0, ctableerr.New(ctableerr.NullError, "ctx must not be nil")
	}
	if err := requireNonNilFunc(reducer, "reducer"); err != nil {
		return 0, err
	}
	r, err := calc.NewCategoricalIntReducer(t.col, identity, reducer, combiner)
	if err != nil {
		return 0, err
	}
	e, err := exec.NewExecutor(t.pool)
	if err != nil {
		return 0, err
	}
	return exec.Run[int](ctx, e, r, hint)
}

// Apply maps every row of the column through mapFn into a fresh slice.
func Apply[E any](ctx context.Context, t *Single, mapFn func(row int) (E, error), hint exec.WorkloadHint) ([]E, error) {
	if ctx == nil {
		return nil, ctableerr.New(ctableerr.NullError, "ctx must not be nil")
	}
	if err := requireNonNilFunc(mapFn, "mapFn"); err != nil {
		return nil, err
	}
	a, err := calc.NewApplier(t.col.Size(), mapFn)
	if err != nil {
		return nil, err
	}
	e, err := exec.NewExecutor(t.pool)
	if err != nil {
		return nil, err
	}
	return exec.Run[[]E](ctx, e, a, hint)
}

// ApplyNumeric is Apply specialized to the column's numeric view.
func ApplyNumeric(ctx context.Context, t *Single, mapFn func(v float64) (float64, error), hint exec.WorkloadHint) ([]float64, error) {
	if err := requireNonNilFunc(mapFn, "mapFn"); err != nil {
		return nil, err
	}
	if !t.col.Capabilities().Has(column.NumericReadable) {
		return nil, ctableerr.New(ctableerr.UnsupportedOperation, "ApplyNumeric: column is not NumericReadable")
	}
	return Apply[float64](ctx, t, func(row int) (float64, error) {
		v, err := readNumericAt(t.col, row)
		if err != nil {
			return 0, err
		}
		return mapFn(v)
	}, hint)
}
