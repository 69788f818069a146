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

package exec

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/colplane/ctable/calc"
	"github.com/colplane/ctable/ctableerr"
)

// Diagf is a global diagnostic hook, nil by default, that Run invokes
// with each run's generated ID and batch plan. Set it during init() to
// capture scheduling diagnostics without plumbing a logger through
// every façade call.
var Diagf func(format string, args ...any)

func diagf(format string, args ...any) {
	if Diagf != nil {
		Diagf(format, args...)
	}
}

// Executor divides a calculator's row range into batches sized by a
// WorkloadHint, dispatches doPart calls to pool, and combines the
// result. One Executor may run any number of calculators sequentially;
// it holds no per-run state.
type Executor struct {
	pool ThreadPool
}

// NewExecutor wraps pool as an Executor. pool must not be nil.
func NewExecutor(pool ThreadPool) (*Executor, error) {
	if pool == nil {
		return nil, ctableerr.New(ctableerr.NullError, "NewExecutor: pool is nil")
	}
	return &Executor{pool: pool}, nil
}

// Run executes c to completion: Init, a worker-dispatched sweep of
// DoPart calls sized per hint, then Result. ctx is consulted for
// cancellation only between batches; a batch already started always
// runs to completion.
func Run[T any](ctx context.Context, e *Executor, c calc.Calculator[T], hint WorkloadHint) (T, error) {
	var zero T
	if ctx == nil {
		return zero, ctableerr.New(ctableerr.NullError, "Run: ctx is nil")
	}
	if c == nil {
		return zero, ctableerr.New(ctableerr.NullError, "Run: calculator is nil")
	}

	runID := uuid.New()
	n := c.NumberOfOperations()
	s := batchSize(n, e.pool.Parallelism(), hint)
	b := numBatches(n, s)

	diagf("exec: run %s starting %d batches (N=%d, S=%d, hint=%s)", runID, b, n, s, hint)

	if err := c.Init(b); err != nil {
		return zero, err
	}

	ranges := planBatches(n, s, b)
	errs := make([]error, b)
	var wg sync.WaitGroup
	cancelledAt := -1
	for batchIndex, rng := range ranges {
		select {
		case <-ctx.Done():
			cancelledAt = batchIndex
		default:
		}
		if cancelledAt >= 0 {
			break
		}

		wg.Add(1)
		idx, r := batchIndex, rng
		e.pool.Submit(func() {
			defer wg.Done()
			errs[idx] = c.DoPart(r.Start, r.End, idx)
		})
	}
	// Wait for every already-dispatched batch to finish, cancelled or
	// not: a batch's DoPart may still be mutating shared accumulator
	// state, and returning early would race the caller's next use of c.
	wg.Wait()

	if cancelledAt >= 0 {
		return zero, ctableerr.New(ctableerr.CancelledError, "Run: %s cancelled after %d/%d batches dispatched", runID, cancelledAt, b)
	}

	for _, err := range errs {
		if err != nil {
			diagf("exec: run %s failed: %v", runID, err)
			return zero, err
		}
	}

	diagf("exec: run %s combining %d batches", runID, b)
	return c.Result()
}
