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
	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
)

// CategoricalIntReducer specializes ScalarReducer to categorical
// columns: it reads raw dictionary indices directly off
// column.IndexColumn rather than paying for the NaN round trip
// FillNumeric imposes. combine may be nil when the reducer will only
// ever run with a single batch.
type CategoricalIntReducer struct {
	col      column.IndexColumn
	identity int
	reduce   func(acc, idx int) int
	combine  func(left, right int) int

	accs paddedAccumulators[int]
}

// NewCategoricalIntReducer builds a reducer over col's dictionary
// indices. col must satisfy column.IndexColumn (only categorical
// columns do).
func NewCategoricalIntReducer(col column.Column, identity int, reduce func(acc, idx int) int, combine func(left, right int) int) (*CategoricalIntReducer, error) {
	if err := requireNonNil(col, "col"); err != nil {
		return nil, err
	}
	if err := requireNonNil(reduce, "reduce"); err != nil {
		return nil, err
	}
	ic, ok := col.(column.IndexColumn)
	if !ok || col.Category() != column.CategoryCategorical {
		return nil, ctableerr.New(ctableerr.UnsupportedOperation, "NewCategoricalIntReducer: column is not CATEGORICAL")
	}
	return &CategoricalIntReducer{col: ic, identity: identity, reduce: reduce, combine: combine}, nil
}

func (r *CategoricalIntReducer) Init(numBatches int) error {
	if numBatches > 1 && r.combine == nil {
		return ctableerr.New(ctableerr.NullError, "CategoricalIntReducer: combiner must not be nil when numBatches > 1")
	}
	r.accs = newPaddedAccumulators(numBatches, r.identity)
	return nil
}

func (r *CategoricalIntReducer) NumberOfOperations() int { return r.col.Size() }

func (r *CategoricalIntReducer) DoPart(from, to, batchIndex int) error {
	acc := r.accs.get(batchIndex)
	for i := from; i < to; i++ {
		acc = r.reduce(acc, r.col.Index(i))
	}
	r.accs.set(batchIndex, acc)
	return nil
}

func (r *CategoricalIntReducer) Result() (int, error) {
	if r.accs.len() == 0 {
		return r.identity, nil
	}
	result := r.accs.get(0)
	for i := 1; i < r.accs.len(); i++ {
		result = r.combine(result, r.accs.get(i))
	}
	return result, nil
}
