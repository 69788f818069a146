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

// Package calc defines the per-job calculator contract the exec
// package drives: init once with the batch count, report the total
// row count, compute independently over disjoint row ranges, and fold
// the final result once every batch has run.
package calc

import (
	"reflect"

	"github.com/colplane/ctable/ctableerr"
)

// Calculator is the contract every concrete flavor (Applier,
// ScalarReducer, AccumulatorReducer, RowReducer,
// CategoricalIntReducer) satisfies. The exec package's Executor drives
// it: Init, then NumberOfOperations batches worth of DoPart calls
// (concurrent, disjoint ranges), then Result.
type Calculator[T any] interface {
	// Init allocates per-batch state for numBatches batches.
	Init(numBatches int) error
	// NumberOfOperations reports the total row count to process.
	NumberOfOperations() int
	// DoPart computes over rows [from, to) using the accumulator slot
	// for batchIndex. Called concurrently across batches with disjoint
	// ranges; never called twice for the same batchIndex.
	DoPart(from, to, batchIndex int) error
	// Result combines the per-batch state in ascending batch-index
	// order and returns the final value; called once after every
	// DoPart has run.
	Result() (T, error)
}

func requireNonNil(v any, name string) error {
	if isNilValue(v) {
		return ctableerr.New(ctableerr.NullError, "%s must not be nil", name)
	}
	return nil
}

// isNilValue reports whether v, a boxed value of possibly-generic
// type, is a nil pointer/slice/map/chan/func/interface. Used to detect
// a mutable-accumulator supplier that returned a nil accumulator,
// which is treated as a null-error rather than a silent zero-value
// accumulator.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func requireCombinerUnlessSingleBatch(combine any, numBatches int) error {
	if numBatches > 1 && isNilValue(combine) {
		return ctableerr.New(ctableerr.NullError, "combiner must not be nil when numBatches > 1")
	}
	return nil
}
