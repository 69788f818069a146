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

// Package ctable ties the engine's layers together: Table is an ordered,
// label-addressed sequence of columns sharing one height, and Builder is
// the minimal construction path from buffers/columns to a Table. Query
// planning, schema evolution, and persistence are explicitly out of
// scope; Table only ever resolves labels to columns and hands out
// Transformer façades over them.
package ctable

import (
	"github.com/colplane/ctable/column"
	"github.com/colplane/ctable/ctableerr"
	"github.com/colplane/ctable/exec"
	"github.com/colplane/ctable/transform"
)

// Table is an immutable, ordered sequence of (label, column) pairs. All
// columns share one height. A Table is built once via Builder and never
// mutated afterward; columns embedded in it are themselves immutable, so
// a Table is safe for concurrent readers just like its columns.
type Table struct {
	height  int
	labels  []string
	columns []column.Column
	index   map[string]int
	pool    exec.ThreadPool
}

// Height reports the number of rows every column shares.
func (t *Table) Height() int { return t.height }

// Width reports the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Labels returns the table's column labels in declaration order. The
// returned slice is a copy; mutating it does not affect the table.
func (t *Table) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// Column resolves a column by its 0-based index.
func (t *Table) Column(i int) (column.Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, ctableerr.New(ctableerr.IndexError, "Column: index %d out of range [0,%d)", i, len(t.columns))
	}
	return t.columns[i], nil
}

// ColumnByLabel resolves a column by its label.
func (t *Table) ColumnByLabel(label string) (column.Column, error) {
	i, ok := t.index[label]
	if !ok {
		return nil, ctableerr.New(ctableerr.ArgumentError, "ColumnByLabel: no column labeled %q", label)
	}
	return t.columns[i], nil
}

// indicesFor resolves a mixed set of labels to column indices, in the
// order given, failing closed on the first unknown label.
func (t *Table) indicesFor(labels []string) ([]int, error) {
	out := make([]int, len(labels))
	for i, label := range labels {
		idx, ok := t.index[label]
		if !ok {
			return nil, ctableerr.New(ctableerr.ArgumentError, "Transform: no column labeled %q", label)
		}
		out[i] = idx
	}
	return out, nil
}

// Transform builds a single-column Transformer over the named column.
func (t *Table) Transform(label string) (*transform.Single, error) {
	col, err := t.ColumnByLabel(label)
	if err != nil {
		return nil, err
	}
	return transform.NewSingle(col, t.pool)
}

// TransformIndex is Transform addressed by position instead of label.
func (t *Table) TransformIndex(i int) (*transform.Single, error) {
	col, err := t.Column(i)
	if err != nil {
		return nil, err
	}
	return transform.NewSingle(col, t.pool)
}

// TransformMulti builds a multi-column Transformer projecting the named
// columns, in the order given.
func (t *Table) TransformMulti(labels ...string) (*transform.Multi, error) {
	idxs, err := t.indicesFor(labels)
	if err != nil {
		return nil, err
	}
	return t.TransformMultiIndex(idxs...)
}

// TransformMultiIndex is TransformMulti addressed by position.
func (t *Table) TransformMultiIndex(indices ...int) (*transform.Multi, error) {
	cols := make([]column.Column, len(indices))
	for i, idx := range indices {
		col, err := t.Column(idx)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return transform.NewMulti(cols, t.pool)
}
