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

// Seconds returns t as a float64 count of seconds (with fractional
// nanosecond precision) since the Unix epoch, the representation used
// by the numeric view of a date-time/time column.
func (t Time) Seconds() float64 {
	return float64(t.UnixNano()) / 1e9
}

// FromSeconds builds a Time from a float64 count of seconds since the
// Unix epoch, the inverse of Seconds.
func FromSeconds(sec float64) Time {
	whole := int64(sec)
	frac := sec - float64(whole)
	ns := int64(frac * 1e9)
	if ns < 0 {
		whole--
		ns += 1e9
	}
	return Unix(whole, ns)
}
