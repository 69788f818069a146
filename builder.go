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

package ctable

import (
	"github.com/colplane/ctable/colbuffer"
	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
	"github.com/colplane/ctable/exec"
)

// Builder assembles a Table one column at a time. It is intentionally
// thin: label/index resolution and a height-consistency check at Build,
// nothing else. A richer table-builder DSL (derived/computed columns,
// an expression language) belongs to a higher layer and is not
// reimplemented here.
//
// Builder accumulates the first error it sees across Add calls and
// returns it from Build: callers can chain Add calls without checking
// an error after every one.
type Builder struct {
	height int
	labels []string
	cols   []column.Column
	seen   map[string]bool
	err    error
}

// NewBuilder starts a Builder for a table of the given height. height
// must be non-negative.
func NewBuilder(height int) *Builder {
	b := &Builder{height: height, seen: map[string]bool{}}
	if height < 0 {
		b.err = ctableerr.New(ctableerr.ArgumentError, "NewBuilder: negative height %d", height)
	}
	return b
}

func (b *Builder) addLabel(label string, col column.Column) *Builder {
	if b.err != nil {
		return b
	}
	if label == "" {
		b.err = ctableerr.New(ctableerr.ArgumentError, "Add: label must not be empty")
		return b
	}
	if b.seen[label] {
		b.err = ctableerr.New(ctableerr.ArgumentError, "Add: duplicate label %q", label)
		return b
	}
	if col.Size() != b.height {
		b.err = ctableerr.New(ctableerr.ArgumentError, "Add: column %q has height %d, table height is %d", label, col.Size(), b.height)
		return b
	}
	b.seen[label] = true
	b.labels = append(b.labels, label)
	b.cols = append(b.cols, col)
	return b
}

// Add appends an already-frozen column under label.
func (b *Builder) Add(label string, col column.Column) *Builder {
	if b.err != nil {
		return b
	}
	if col == nil {
		b.err = ctableerr.New(ctableerr.NullError, "Add: column for %q is nil", label)
		return b
	}
	return b.addLabel(label, col)
}

// AddBuffer seals buf as a column of the declared type and appends it
// under label. buf is frozen by this call if it was not already.
func (b *Builder) AddBuffer(label string, buf colbuffer.Buffer, t column.Type) *Builder {
	if b.err != nil {
		return b
	}
	if buf == nil {
		b.err = ctableerr.New(ctableerr.NullError, "AddBuffer: buffer for %q is nil", label)
		return b
	}
	col, err := buf.ToColumn(t)
	if err != nil {
		b.err = err
		return b
	}
	return b.addLabel(label, col)
}

// Build finalizes the table, binding pool as the ThreadPool every
// Transformer obtained from it will dispatch work to. Returns the first
// error observed by a prior Add/AddBuffer call, if any.
func (b *Builder) Build(pool exec.ThreadPool) (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if pool == nil {
		return nil, ctableerr.New(ctableerr.NullError, "Build: pool is nil")
	}
	index := make(map[string]int, len(b.labels))
	for i, label := range b.labels {
		index[label] = i
	}
	return &Table{
		height:  b.height,
		labels:  b.labels,
		columns: b.cols,
		index:   index,
		pool:    pool,
	}, nil
}
