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

import "github.com/colplane/ctable/ctableerr"

// ScalarReducer folds rows [0,N) into a single value of type A, seeded
// from identity in every batch and combined left-to-right across
// batches in ascending batch-index order once every doPart has run.
type ScalarReducer[A, V any] struct {
	identity  A
	n         int
	readValue func(row int) (V, error)
	reduce    func(acc A, v V) (A, error)
	combine   func(left, right A) (A, error)

	accs paddedAccumulators[A]
}

// NewScalarReducer builds a reducer over n rows. combine may be nil
// only if the caller will run it with a single batch (enforced at
// Init, since the batch count is not known until then).
func NewScalarReducer[A, V any](n int, identity A, readValue func(row int) (V, error), reduce func(acc A, v V) (A, error), combine func(left, right A) (A, error)) (*ScalarReducer[A, V], error) {
	if err := requireNonNil(readValue, "readValue"); err != nil {
		return nil, err
	}
	if err := requireNonNil(reduce, "reduce"); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ctableerr.New(ctableerr.ArgumentError, "NewScalarReducer: negative n %d", n)
	}
	return &ScalarReducer[A, V]{identity: identity, n: n, readValue: readValue, reduce: reduce, combine: combine}, nil
}

func (r *ScalarReducer[A, V]) Init(numBatches int) error {
	if err := requireCombinerUnlessSingleBatch(r.combine, numBatches); err != nil {
		return err
	}
	r.accs = newPaddedAccumulators(numBatches, r.identity)
	return nil
}

func (r *ScalarReducer[A, V]) NumberOfOperations() int { return r.n }

func (r *ScalarReducer[A, V]) DoPart(from, to, batchIndex int) error {
	acc := r.accs.get(batchIndex)
	for i := from; i < to; i++ {
		v, err := r.readValue(i)
		if err != nil {
			return err
		}
		acc, err = r.reduce(acc, v)
		if err != nil {
			return err
		}
	}
	r.accs.set(batchIndex, acc)
	return nil
}

func (r *ScalarReducer[A, V]) Result() (A, error) {
	if r.accs.len() == 0 {
		return r.identity, nil
	}
	result := r.accs.get(0)
	for i := 1; i < r.accs.len(); i++ {
		var err error
		result, err = r.combine(result, r.accs.get(i))
		if err != nil {
			var zero A
			return zero, err
		}
	}
	return result, nil
}

// AccumulatorReducer folds rows [0,N) into a mutable accumulator of
// type A (e.g. a pointer to a struct, or a slice): supplier produces
// one fresh accumulator per batch, reduce mutates it in place per row,
// and combine merges the right accumulator into the left.
type AccumulatorReducer[A, V any] struct {
	n         int
	supplier  func() (A, error)
	readValue func(row int) (V, error)
	reduce    func(acc A, v V) error
	combine   func(left, right A) error

	accs []A
}

// NewAccumulatorReducer builds a reducer over n rows.
func NewAccumulatorReducer[A, V any](n int, supplier func() (A, error), readValue func(row int) (V, error), reduce func(acc A, v V) error, combine func(left, right A) error) (*AccumulatorReducer[A, V], error) {
	if err := requireNonNil(supplier, "supplier"); err != nil {
		return nil, err
	}
	if err := requireNonNil(readValue, "readValue"); err != nil {
		return nil, err
	}
	if err := requireNonNil(reduce, "reduce"); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ctableerr.New(ctableerr.ArgumentError, "NewAccumulatorReducer: negative n %d", n)
	}
	return &AccumulatorReducer[A, V]{n: n, supplier: supplier, readValue: readValue, reduce: reduce, combine: combine}, nil
}

func (r *AccumulatorReducer[A, V]) Init(numBatches int) error {
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
			return ctableerr.New(ctableerr.NullError, "AccumulatorReducer: supplier returned a nil accumulator")
		}
		accs[i] = acc
	}
	r.accs = accs
	return nil
}

func (r *AccumulatorReducer[A, V]) NumberOfOperations() int { return r.n }

func (r *AccumulatorReducer[A, V]) DoPart(from, to, batchIndex int) error {
	acc := r.accs[batchIndex]
	for i := from; i < to; i++ {
		v, err := r.readValue(i)
		if err != nil {
			return err
		}
		if err := r.reduce(acc, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *AccumulatorReducer[A, V]) Result() (A, error) {
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
