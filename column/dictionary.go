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

package column

import "github.com/colplane/ctable/ctableerr"

// Dictionary is the frozen, ordered list of distinct values backing a
// categorical column. Index 0 is always the missing sentinel (nil).
// Dictionaries are immutable once a column is built and may be shared
// between a column and any number of concurrent readers.
type Dictionary struct {
	values []any
}

// NewDictionary wraps values (whose element 0 must already be nil, the
// missing sentinel) as a frozen Dictionary. Ownership of values
// transfers to the Dictionary; callers must not mutate it afterward.
func NewDictionary(values []any) *Dictionary {
	if len(values) == 0 || values[0] != nil {
		panic("column: dictionary element 0 must be the nil missing sentinel")
	}
	return &Dictionary{values: values}
}

// Size reports the number of entries, including the missing sentinel at
// index 0.
func (d *Dictionary) Size() int { return len(d.values) }

// At returns the value stored at index i, or nil if i == 0.
func (d *Dictionary) At(i int) any {
	return d.values[i]
}

// Values returns the dictionary's backing slice. Callers must not
// mutate the returned slice.
func (d *Dictionary) Values() []any { return d.values }

// TypedDictionary type-asserts every entry of a categorical column's
// dictionary (skipping index 0, the missing sentinel, which decodes to
// the zero value of T) into a []T.
func TypedDictionary[T any](c Column) ([]T, error) {
	if c.Category() != CategoryCategorical {
		return nil, ctableerr.New(ctableerr.UnsupportedOperation, "Dictionary: column category %s is not CATEGORICAL", c.Category())
	}
	raw, err := c.Dictionary()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(raw))
	for i, v := range raw[1:] {
		tv, ok := v.(T)
		if !ok {
			return nil, ctableerr.New(ctableerr.ArgumentError, "Dictionary: entry %d is not assertable to requested type", i+1)
		}
		out[i+1] = tv
	}
	return out, nil
}
