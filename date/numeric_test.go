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

package date

import "testing"

func TestSecondsRoundTrip(t *testing.T) {
	cases := []float64{0, 1.5, 1700000000.25, -1000.5}
	for _, want := range cases {
		got := FromSeconds(want).Seconds()
		if diff := got - want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("FromSeconds(%v).Seconds() = %v, want %v", want, got, want)
		}
	}
}
