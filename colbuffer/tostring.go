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
	"math"
	"strings"
)

// maxPrintedElements is the threshold past which bufferString truncates
// its element list to the first 31 entries plus the last.
const maxPrintedElements = 32

// formatReal renders a single float64 per the ToString contract: three
// fractional digits, "?" for NaN, "Infinity"/"-Infinity" for the
// infinities.
func formatReal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "?"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	default:
		return fmt.Sprintf("%.3f", v)
	}
}

// formatInteger renders a float64-backed integer buffer slot as a
// plain decimal, with the same NaN/Infinity conventions as formatReal.
func formatInteger(v float64) string {
	switch {
	case math.IsNaN(v):
		return "?"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	default:
		return fmt.Sprintf("%d", int64(v))
	}
}

// bufferString assembles the stable "<Flavor> Buffer (<n>)\n(...)"
// representation, truncating past 31 printed elements to
// "e1, ..., eLast".
func bufferString(flavor string, n int, at func(i int) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Buffer (%d)\n(", flavor, n)
	switch {
	case n <= maxPrintedElements:
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(at(i))
		}
	case n > 0:
		for i := 0; i < maxPrintedElements-1; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(at(i))
		}
		b.WriteString(", ..., ")
		b.WriteString(at(n - 1))
	}
	b.WriteString(")")
	return b.String()
}
