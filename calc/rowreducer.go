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

package calc

import (
	"github.com/colplane/ctable/ctableerr"
	"github.com/colplane/ctable/rowio"
)

// MovableRow is a multi-column reader positioned one row at a time;
// both rowio.RowReader and rowio.GeneralRowReader satisfy it. A fresh
// MovableRow is created per batch so that readers, which are
// single-threaded by contract, are never shared across batch threads.
type MovableRow interface {
	rowio.Row
	Move() error
	SetPosition(p int) error
}

// RowReducer is the multi-column analogue of AccumulatorReducer: the
// reducer function receives a Row view (getNumeric/getIndex/getObject)
// instead of a single column's value.
type RowReducer[A any] struct {
	n         int
	supplier  func() (A, error)
	newReader func() (MovableRow, error)
	reduce    func(acc A, row rowio.Row) error
	combine   func(left, right A) error

	accs []A
}

// NewRowReducer builds a reducer over n rows. newReader must return a
// fresh, unshared MovableRow each call; RowReducer positions it itself.
func NewRowReducer[A any](n int, supplier func() (A, error), newReader func() (MovableRow, error), reduce func(acc A, row rowio.Row) error, combine func(left, right A) error) (*RowReducer[A], error) {
	if err := requireNonNil(supplier, "supplier"); err != nil {
		return nil, err
	}
	if err := requireNonNil(newReader, "newReader"); err != nil {
		return nil, err
	}
	if err := requireNonNil(reduce, "reduce"); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ctableerr.New(ctableerr.ArgumentError, "NewRowReducer: negative n %d", n)
	}
	return &RowReducer[A]{n: n, supplier: supplier, newReader: newReader, reduce: reduce, combine: combine}, nil
}

func (r *RowReducer[A]) Init(numBatches int) error {
	if err := requireCombinerUnlessSingleBatch(r.combine, numBatches); err != nil {
		return err
	}
	accs := make([]A, numBatches)
	for i := range accs {
		acc, err := r.supplier()
		if err != nil {
			return err
		}
		if isNilValue(acc) {
			return ctableerr.New(ctableerr.NullError, "RowReducer: supplier returned a nil accumulator")
		}
		accs[i] = acc
	}
	r.accs = accs
	return nil
}

func (r *RowReducer[A]) NumberOfOperations() int { return r.n }

func (r *RowReducer[A]) DoPart(from, to, batchIndex int) error {
	if from >= to {
		return nil
	}
	reader, err := r.newReader()
	if err != nil {
		return err
	}
	if err := reader.SetPosition(from - 1); err != nil {
		return err
	}
	acc := r.accs[batchIndex]
	for i := from; i < to; i++ {
		if err := reader.Move(); err != nil {
			return err
		}
		if err := r.reduce(acc, reader); err != nil {
			return err
		}
	}
	return nil
}

func (r *RowReducer[A]) Result() (A, error) {
	var zero A
	if len(r.accs) == 0 {
		return zero, nil
	}
	result := r.accs[0]
	for i := 1; i < len(r.accs); i++ {
		if err := r.combine(result, r.accs[i]); err != nil {
			return zero, err
		}
	}
	return result, nil
}
