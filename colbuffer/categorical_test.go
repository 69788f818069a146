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
	"testing"

	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/packedint"
)

func TestCategoricalBufferDedup(t *testing.T) {
	b := NewCategoricalBuffer(packedint.U8, 4)
	for i, v := range []any{"a", "b", "a", nil} {
		if err := b.Set(i, v); err != nil {
			t.Fatal(err)
		}
	}
	if b.DifferentValues() != 2 {
		t.Fatalf("DifferentValues() = %d, want 2", b.DifferentValues())
	}
	if b.Get(0) != "a" || b.Get(2) != "a" {
		t.Fatal("expected slots 0 and 2 to share the same value")
	}
	if b.Get(3) != nil {
		t.Fatalf("Get(3) = %v, want nil (missing)", b.Get(3))
	}
}

func TestCategoricalBufferOverflow(t *testing.T) {
	b := NewCategoricalBuffer(packedint.U2, 4)
	for i, v := range []any{"a", "b", "c"} {
		if err := b.Set(i, v); err != nil {
			t.Fatal(err)
		}
	}
	// U2.MaxValue() == 3, and indices 1..3 are already taken by a, b, c.
	if err := b.Set(3, "d"); err == nil {
		t.Fatal("expected overflow error inserting a 4th distinct value into a U2 buffer")
	}
}

func TestCategoricalBufferToColumn(t *testing.T) {
	b := NewCategoricalBuffer(packedint.U8, 2)
	b.Set(0, "x")
	b.Set(1, "y")
	col, err := b.ToColumn(column.TypeCategorical)
	if err != nil {
		t.Fatal(err)
	}
	dict, err := col.Dictionary()
	if err != nil {
		t.Fatal(err)
	}
	if len(dict) != 3 { // missing + x + y
		t.Fatalf("len(dict) = %d, want 3", len(dict))
	}
}

func TestCategoricalBufferConcurrentSet(t *testing.T) {
	const n = 200
	b := NewCategoricalBuffer(packedint.U16, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Every 10 rows shares the same value, forcing concurrent
			// inserters to race for the same new dictionary entry.
			b.Set(i, fmt.Sprintf("v%d", i/10))
		}()
	}
	wg.Wait()
	if got := b.DifferentValues(); got != n/10 {
		t.Fatalf("DifferentValues() = %d, want %d", got, n/10)
	}
}
