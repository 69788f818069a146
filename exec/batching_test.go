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

import "testing"

func TestPlanBatchesCoversRangeExactly(t *testing.T) {
	for _, tc := range []struct{ n, p int }{
		{0, 4}, {1, 4}, {75, 4}, {10_000, 3}, {1, 1},
	} {
		s := batchSize(tc.n, tc.p, Default)
		b := numBatches(tc.n, s)
		ranges := planBatches(tc.n, s, b)
		if len(ranges) != b {
			t.Fatalf("n=%d: len(ranges) = %d, want %d", tc.n, len(ranges), b)
		}
		want := 0
		for i, r := range ranges {
			if r.Start != want {
				t.Fatalf("n=%d: ranges[%d].Start = %d, want %d", tc.n, i, r.Start, want)
			}
			if r.End < r.Start {
				t.Fatalf("n=%d: ranges[%d] = %+v is not well-formed", tc.n, i, r)
			}
			want = r.End
		}
		if want != tc.n {
			t.Fatalf("n=%d: final range end = %d, want %d", tc.n, want, tc.n)
		}
	}
}

func TestPlanBatchesZeroRowsYieldsOneEmptyRange(t *testing.T) {
	ranges := planBatches(0, 64, 1)
	if len(ranges) != 1 || !ranges[0].Empty() {
		t.Fatalf("planBatches(0,...) = %+v, want one empty interval", ranges)
	}
}
