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

package colbuffer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
	"github.com/colplane/ctable/packedint"
)

// CategoricalBuffer packs one dictionary index per row, growing the
// shared dictionary as new distinct values are written. Index 0 is
// reserved for "missing" (a nil Set value).
type CategoricalBuffer struct {
	indices *packedint.Array
	format  packedint.Format

	dictMu sync.Mutex // guards dict + rev together; see TrySet
	dict   []any
	rev    *reverseIndex

	frozen atomic.Bool
}

// NewCategoricalBuffer allocates a buffer of n missing-valued slots
// using the packed format f.
func NewCategoricalBuffer(f packedint.Format, n int) *CategoricalBuffer {
	return &CategoricalBuffer{
		indices: packedint.NewArray(f, n),
		format:  f,
		dict:    []any{nil},
		rev:     newReverseIndex(),
	}
}

func (b *CategoricalBuffer) Size() int { return b.indices.Len() }

func (b *CategoricalBuffer) Get(i int) any {
	b.dictMu.Lock()
	v := b.dict[b.indices.Get(i)]
	b.dictMu.Unlock()
	return v
}

// DifferentValues reports the number of distinct non-missing values
// written so far.
func (b *CategoricalBuffer) DifferentValues() int {
	b.dictMu.Lock()
	n := len(b.dict) - 1
	b.dictMu.Unlock()
	return n
}

// TrySet writes v into slot i, growing the dictionary if v has not
// been seen before. It returns ok=false (instead of an error) if the
// dictionary would need to grow past the packed format's capacity,
// letting callers choose how to react (Set turns this into an error;
// a buffer that auto-upgrades formats could instead reallocate).
func (b *CategoricalBuffer) TrySet(i int, v any) (bool, error) {
	if b.frozen.Load() {
		return false, ctableerr.New(ctableerr.StateError, "TrySet: buffer is frozen")
	}
	if v == nil {
		b.indices.Set(i, 0)
		return true, nil
	}

	if idx, ok := b.rev.lookup(v); ok {
		b.indices.Set(i, idx)
		return true, nil
	}

	b.dictMu.Lock()
	// Re-check under the lock: another goroutine may have inserted v
	// between our lookup above and acquiring dictMu.
	if idx, ok := b.rev.lookup(v); ok {
		b.dictMu.Unlock()
		b.indices.Set(i, idx)
		return true, nil
	}
	newIdx := len(b.dict)
	if newIdx > b.format.MaxValue() {
		b.dictMu.Unlock()
		return false, nil
	}
	b.dict = append(b.dict, v)
	stored, existed := b.rev.store(v, newIdx)
	b.dictMu.Unlock()

	if existed {
		// Lost a race to another inserter for the same value; use its
		// index instead of the (unused) slot we reserved.
		b.indices.Set(i, stored)
		return true, nil
	}
	b.indices.Set(i, newIdx)
	return true, nil
}

// Set writes v into slot i, raising an argument-error if the
// dictionary has already reached the packed format's capacity.
func (b *CategoricalBuffer) Set(i int, v any) error {
	ok, err := b.TrySet(i, v)
	if err != nil {
		return err
	}
	if !ok {
		return ctableerr.New(ctableerr.ArgumentError,
			"Set: more than %d different values for format %s", b.format.MaxValue(), b.format)
	}
	return nil
}

func (b *CategoricalBuffer) Freeze() { b.frozen.Store(true) }

func (b *CategoricalBuffer) Frozen() bool { return b.frozen.Load() }

func (b *CategoricalBuffer) ToColumn(t column.Type) (column.Column, error) {
	if t != column.TypeCategorical {
		return nil, ctableerr.New(ctableerr.ArgumentError, "ToColumn: type %s is not CATEGORICAL", t)
	}
	b.Freeze()
	b.dictMu.Lock()
	dict := column.NewDictionary(append([]any(nil), b.dict...))
	b.dictMu.Unlock()
	return column.NewCategoricalColumn(b.indices, dict), nil
}

func (b *CategoricalBuffer) String() string {
	return bufferString("Categorical", b.Size(), func(i int) string {
		v := b.Get(i)
		if v == nil {
			return "?"
		}
		return fmt.Sprintf("%v", v)
	})
}
