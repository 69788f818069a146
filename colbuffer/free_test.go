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
	"testing"

	"github.com/colplane/ctable/column"
)

func TestFreeBufferSetGet(t *testing.T) {
	b := NewFreeBuffer(2)
	if err := b.Set(0, "hello"); err != nil {
		t.Fatal(err)
	}
	if got := b.Get(0); got != "hello" {
		t.Errorf("Get(0) = %v, want %q", got, "hello")
	}
	if got := b.Get(1); got != nil {
		t.Errorf("Get(1) = %v, want nil", got)
	}
}

func TestFreeBufferResize(t *testing.T) {
	b := NewFreeBuffer(1)
	b.Set(0, 42)
	if err := b.Resize(3); err != nil {
		t.Fatal(err)
	}
	if b.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", b.Size())
	}
	if b.Get(0) != 42 {
		t.Fatal("expected slot 0 preserved across grow")
	}
}

func TestFreeBufferToColumn(t *testing.T) {
	b := NewFreeBuffer(2)
	b.Set(0, "a")
	b.Set(1, 1.5)
	col, err := b.ToColumn(column.TypeFree)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]any, 2)
	if err := col.FillObject(dst, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if dst[0] != "a" || dst[1] != 1.5 {
		t.Fatalf("FillObject = %v", dst)
	}
}

func TestFreeBufferFreezeRejectsWrites(t *testing.T) {
	b := NewFreeBuffer(1)
	b.Freeze()
	if err := b.Set(0, "x"); err == nil {
		t.Fatal("expected error writing to frozen buffer")
	}
}
