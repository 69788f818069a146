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

// RowApplier is the multi-column analogue of Applier: mapFn sees a Row
// view rather than a bare row index. Like Applier, doPart ranges are
// disjoint so no combine step is required; like RowReducer, a fresh
// reader is created per batch so readers are never shared across
// threads.
type RowApplier[E any] struct {
	n         int
	newReader func() (MovableRow, error)
	mapFn     func(row rowio.Row) (E, error)

	target []E
}

// NewRowApplier builds a row applier over n rows.
func NewRowApplier[E any](n int, newReader func() (MovableRow, error), mapFn func(row rowio.Row) (E, error)) (*RowApplier[E], error) {
	if err := requireNonNil(newReader, "newReader"); err != nil {
		return nil, err
	}
	if err := requireNonNil(mapFn, "mapFn"); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ctableerr.New(ctableerr.ArgumentError, "NewRowApplier: negative n %d", n)
	}
	return &RowApplier[E]{n: n, newReader: newReader, mapFn: mapFn}, nil
}

func (a *RowApplier[E]) Init(numBatches int) error {
	a.target = make([]E, a.n)
	return nil
}

func (a *RowApplier[E]) NumberOfOperations() int { return a.n }

func (a *RowApplier[E]) DoPart(from, to, batchIndex int) error {
	if from >= to {
		return nil
	}
	reader, err := a.newReader()
	if err != nil {
		return err
	}
	if err := reader.SetPosition(from - 1); err != nil {
		return err
	}
	for i := from; i < to; i++ {
		if err := reader.Move(); err != nil {
			return err
		}
		v, err := a.mapFn(reader)
		if err != nil {
			return err
		}
		a.target[i] = v
	}
	return nil
}

func (a *RowApplier[E]) Result() ([]E, error) {
	return a.target, nil
}
