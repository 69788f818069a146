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

import "golang.org/x/sys/cpu"

// paddedSlot holds one batch's scalar accumulator. ScalarReducer.DoPart
// writes r.accs[batchIndex] from whichever goroutine the executor
// scheduled that batch on; distinct batches run on distinct goroutines
// but batchIndex is dense, so a plain []A packs several accumulators
// into one cache line. Without padding, two worker goroutines updating
// adjacent slots fight over that line's MESI state on every write
// (false sharing) even though the writes are logically independent.
// CacheLinePad gives each slot its own line.
type paddedSlot[A any] struct {
	_     cpu.CacheLinePad
	value A
	_     cpu.CacheLinePad
}

// paddedAccumulators is a fixed-size array of per-batch scalar
// accumulators, one per cache line.
type paddedAccumulators[A any] struct {
	slots []paddedSlot[A]
}

func newPaddedAccumulators[A any](n int, identity A) paddedAccumulators[A] {
	slots := make([]paddedSlot[A], n)
	for i := range slots {
		slots[i].value = identity
	}
	return paddedAccumulators[A]{slots: slots}
}

func (p *paddedAccumulators[A]) get(i int) A    { return p.slots[i].value }
func (p *paddedAccumulators[A]) set(i int, v A) { p.slots[i].value = v }
func (p *paddedAccumulators[A]) len() int       { return len(p.slots) }
