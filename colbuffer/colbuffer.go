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

// Package colbuffer implements the mutable, write-side counterpart of
// package column: buffers are built up with Set, then Frozen into an
// immutable Column. A frozen buffer rejects further writes; freezing is
// one-way and idempotent.
package colbuffer

import (
	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
)

// Buffer is the common contract every mutable buffer flavor satisfies.
type Buffer interface {
	// Size reports the number of slots.
	Size() int
	// Get returns the value stored at slot i, boxed.
	Get(i int) any
	// Set writes v into slot i. Returns a state-error if the buffer is
	// frozen.
	Set(i int, v any) error
	// Freeze transitions the buffer from mutable to immutable. It is
	// idempotent: calling it twice is a no-op.
	Freeze()
	// Frozen reports whether Freeze has been called.
	Frozen() bool
	// ToColumn seals the buffer (freezing it if not already frozen)
	// and returns an immutable Column of the declared type. Returns an
	// argument-error if t's category disagrees with the buffer's
	// storage family.
	ToColumn(t column.Type) (column.Column, error)
	// String renders the buffer per the stable ToString contract (see
	// package colbuffer's tostring.go).
	String() string
}

// Resizable is additionally satisfied by the growing buffer variants.
type Resizable interface {
	// Resize grows or shrinks the buffer to n slots in place,
	// truncating or zero-extending. Returns a state-error once the
	// buffer is frozen.
	Resize(n int) error
}

func stateErrorIfFrozen(frozen bool, op string) error {
	if frozen {
		return ctableerr.New(ctableerr.StateError, "%s: buffer is frozen", op)
	}
	return nil
}

func negativeSizeError(n int) error {
	if n < 0 {
		return ctableerr.New(ctableerr.ArgumentError, "negative size %d", n)
	}
	return nil
}
