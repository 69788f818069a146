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

	"github.com/dchest/siphash"
)

// numShards partitions the value->index reverse lookup so that
// concurrent TrySet calls against distinct values rarely contend on
// the same mutex.
const numShards = 16

// reverseIndex is a sharded value->dictionary-index lookup used by
// CategoricalBuffer to dedup incoming values against the growing
// dictionary without a linear scan. siphash picks the shard; equality
// within a shard is plain Go map equality, so siphash collisions never
// cause incorrect lookups, only extra (harmless) shard sharing.
type reverseIndex struct {
	shards [numShards]reverseShard
}

type reverseShard struct {
	mu sync.RWMutex
	m  map[any]int
}

func newReverseIndex() *reverseIndex {
	r := &reverseIndex{}
	for i := range r.shards {
		r.shards[i].m = make(map[any]int)
	}
	return r
}

func shardFor(v any) int {
	h := siphash.Hash(0, 0, encodeKey(v))
	return int(h & (numShards - 1))
}

// encodeKey produces bytes suitable for hashing from any dictionary
// value. Common scalar kinds are encoded directly; anything else falls
// back to its default string representation, which is slower but still
// correct since it is only ever used to pick a shard.
func encodeKey(v any) []byte {
	switch x := v.(type) {
	case string:
		return []byte(x)
	case int:
		return []byte(fmt.Sprintf("i%d", x))
	case int64:
		return []byte(fmt.Sprintf("i%d", x))
	case float64:
		return []byte(fmt.Sprintf("f%v", x))
	case bool:
		if x {
			return []byte("b1")
		}
		return []byte("b0")
	default:
		return []byte(fmt.Sprintf("%v", x))
	}
}

// lookup returns the dictionary index for v, if already present.
func (r *reverseIndex) lookup(v any) (int, bool) {
	s := &r.shards[shardFor(v)]
	s.mu.RLock()
	idx, ok := s.m[v]
	s.mu.RUnlock()
	return idx, ok
}

// store records that v maps to idx. Double-checked: a second lookup is
// performed under the write lock in case a concurrent writer raced us
// between the caller's lookup and this store, so the first writer to
// land wins and no dictionary entry is ever duplicated.
func (r *reverseIndex) store(v any, idx int) (stored int, existed bool) {
	s := &r.shards[shardFor(v)]
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.m[v]; ok {
		return existing, true
	}
	s.m[v] = idx
	return idx, false
}
