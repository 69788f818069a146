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

package exec

import (
	"strings"

	"github.com/colplane/ctable/ints"
)

// WorkloadHint tunes the batch-size policy to the expected per-row
// cost: SMALL work favors large batches (few dispatch points), HUGE
// work favors small batches (finer-grained parallelism).
type WorkloadHint uint8

const (
	Small WorkloadHint = iota
	Default
	Large
	Huge
)

func (w WorkloadHint) String() string {
	switch w {
	case Small:
		return "SMALL"
	case Default:
		return "DEFAULT"
	case Large:
		return "LARGE"
	case Huge:
		return "HUGE"
	default:
		return "WorkloadHint(?)"
	}
}

// ParseWorkloadHint maps a config-file string ("small", "default",
// "large", "huge", case-insensitively) to a WorkloadHint. An unknown
// string returns Default and ok=false so callers can decide whether
// that's a fatal configuration error or an acceptable fallback.
func ParseWorkloadHint(s string) (hint WorkloadHint, ok bool) {
	switch strings.ToLower(s) {
	case "small":
		return Small, true
	case "default":
		return Default, true
	case "large":
		return Large, true
	case "huge":
		return Huge, true
	default:
		return Default, false
	}
}

func (w WorkloadHint) factor() int {
	switch w {
	case Small:
		return 1
	case Default:
		return 4
	case Large:
		return 16
	case Huge:
		return 64
	default:
		return 4
	}
}

const (
	minBatch = 64
	maxBatch = 1 << 20
)

// batchSize computes S = clamp(N / (P * k), minBatch, maxBatch) for
// the given row count n, pool parallelism p, and workload hint.
func batchSize(n, p int, w WorkloadHint) int {
	if p < 1 {
		p = 1
	}
	k := w.factor()
	s := n / (p * k)
	return ints.Clamp(s, minBatch, maxBatch)
}

// numBatches returns ceil(n / s), at least 1 (so that a zero-row
// calculator still receives exactly one empty batch, per the
// zero-length boundary case).
func numBatches(n, s int) int {
	if n <= 0 {
		return 1
	}
	return (n + s - 1) / s
}

// planBatches lays out b contiguous, disjoint row ranges over [0, n)
// using a target size of s rows each; the last range absorbs whatever
// remainder batchSize's clamping left over so the ranges always cover
// [0, n) exactly. Expressed as ints.Interval (half-open [Start, End))
// rather than a pair of bare ints threaded through every call site.
func planBatches(n, s, b int) []ints.Interval {
	out := make([]ints.Interval, b)
	for i := 0; i < b; i++ {
		from := i * s
		to := from + s
		if to > n || i == b-1 {
			to = n
		}
		out[i] = ints.Interval{Start: from, End: to}
	}
	return out
}
