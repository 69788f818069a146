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

// Applier maps each row independently into an output buffer of
// length n; since every doPart writes to a disjoint row range, no
// combine step is needed.
type Applier[E any] struct {
	n     int
	mapFn func(row int) (E, error)

	target []E
}

// NewApplier builds an Applier over n rows using mapFn to compute each
// output element.
func NewApplier[E any](n int, mapFn func(row int) (E, error)) (*Applier[E], error) {
	if err := requireNonNil(mapFn, "mapFn"); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ctableerr.New(ctableerr.ArgumentError, "NewApplier: negative n %d", n)
	}
	return &Applier[E]{n: n, mapFn: mapFn}, nil
}

func (a *Applier[E]) Init(numBatches int) error {
	a.target = make([]E, a.n)
	return nil
}

func (a *Applier[E]) NumberOfOperations() int { return a.n }

func (a *Applier[E]) DoPart(from, to, batchIndex int) error {
	for i := from; i < to; i++ {
		v, err := a.mapFn(i)
		if err != nil {
			return err
		}
		a.target[i] = v
	}
	return nil
}

func (a *Applier[E]) Result() ([]E, error) {
	return a.target, nil
}
