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

// Package ctableerr defines the error taxonomy shared by every layer of the
// engine: columns, buffers, readers, calculators, the executor, and the
// transformer façades all report failures as one of these kinds so that
// callers can dispatch on errors.Is rather than parsing message text.
package ctableerr

import (
	"errors"
	"fmt"
)

// Kind identifies the taxonomy bucket a failure falls into.
type Kind int

const (
	// NullError: a required argument or a user-supplied function's
	// return value was missing.
	NullError Kind = iota
	// ArgumentError: a negative size, a type/category mismatch at
	// ToColumn, or a categorical dictionary overflow in a throwing Set.
	ArgumentError
	// StateError: a write or resize was attempted on a frozen buffer.
	StateError
	// IndexError: SetPosition(p < -1) or an out-of-range row access.
	IndexError
	// UnsupportedOperation: the operation needs a capability the column
	// does not declare.
	UnsupportedOperation
	// CancelledError: the executor's context reported cancellation
	// between batches.
	CancelledError
)

func (k Kind) String() string {
	switch k {
	case NullError:
		return "null-error"
	case ArgumentError:
		return "argument-error"
	case StateError:
		return "state-error"
	case IndexError:
		return "index-error"
	case UnsupportedOperation:
		return "unsupported-operation"
	case CancelledError:
		return "cancelled-error"
	default:
		return "unknown-error"
	}
}

// sentinel is the value errors.Is compares against; New wraps it so
// the kind survives %w-unwrapping regardless of the message attached.
type sentinel struct{ kind Kind }

func (s *sentinel) Error() string { return s.kind.String() }

var sentinels = [...]*sentinel{
	NullError:            {NullError},
	ArgumentError:        {ArgumentError},
	StateError:           {StateError},
	IndexError:           {IndexError},
	UnsupportedOperation: {UnsupportedOperation},
	CancelledError:       {CancelledError},
}

// Is reports whether err (or anything it wraps) was produced by New
// for the given kind.
func Is(err error, kind Kind) bool {
	return errors.Is(err, sentinels[kind])
}

// New builds an error of the given kind with a formatted message. The
// result satisfies errors.Is(err, sentinel-for-kind).
func New(kind Kind, format string, args ...any) error {
	return fmt.Errorf("ctable: %s: %w", fmt.Sprintf(format, args...), sentinels[kind])
}

// KindOf returns the Kind the first matching sentinel in err's chain
// corresponds to, and false if err does not originate from this package.
func KindOf(err error) (Kind, bool) {
	for k, s := range sentinels {
		if errors.Is(err, s) {
			return Kind(k), true
		}
	}
	return 0, false
}
