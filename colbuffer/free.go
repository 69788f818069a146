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
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
)

// FreeBuffer stores one boxed reference per row with no dictionary and
// no dense numeric backing.
type FreeBuffer struct {
	data   []any
	frozen atomic.Bool
}

// NewFreeBuffer allocates a free buffer of n nil-valued slots.
func NewFreeBuffer(n int) *FreeBuffer {
	return &FreeBuffer{data: make([]any, n)}
}

func (b *FreeBuffer) Size() int { return len(b.data) }

func (b *FreeBuffer) Get(i int) any { return b.data[i] }

func (b *FreeBuffer) Set(i int, v any) error {
	if b.frozen.Load() {
		return ctableerr.New(ctableerr.StateError, "Set: buffer is frozen")
	}
	b.data[i] = v
	return nil
}

func (b *FreeBuffer) Freeze() { b.frozen.Store(true) }

func (b *FreeBuffer) Frozen() bool { return b.frozen.Load() }

// Resize grows or shrinks the buffer to n slots in place.
func (b *FreeBuffer) Resize(n int) error {
	if b.frozen.Load() {
		return ctableerr.New(ctableerr.StateError, "Resize: buffer is frozen")
	}
	if err := negativeSizeError(n); err != nil {
		return err
	}
	if n <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:n]
		for i := old; i < n; i++ {
			b.data[i] = nil
		}
		return nil
	}
	grown := make([]any, n)
	copy(grown, b.data)
	b.data = grown
	return nil
}

func (b *FreeBuffer) ToColumn(t column.Type) (column.Column, error) {
	if t != column.TypeFree {
		return nil, ctableerr.New(ctableerr.ArgumentError, "ToColumn: type %s is not FREE", t)
	}
	b.Freeze()
	return column.NewFreeColumn(slices.Clone(b.data)), nil
}

func (b *FreeBuffer) String() string {
	return bufferString("Free", b.Size(), func(i int) string {
		if b.data[i] == nil {
			return "?"
		}
		return fmt.Sprintf("%v", b.data[i])
	})
}
