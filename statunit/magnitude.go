// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statunit classifies counter values into decimal magnitudes
// and scales sets of values onto a shared magnitude.
//
// Counters from different CPU clusters can differ by several orders
// of magnitude. Charting them on one axis requires picking a single
// Magnitude for the whole chart; the convention used throughout this
// module is to pick the smallest one, so the smaller series never
// needs scientific notation.
package statunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Magnitude is a power-of-ten bucket. Each bucket spans three
// decades, from E-9 up to E27, and the zero Magnitude is E0.
//
// Magnitudes are totally ordered by their exponent, so two
// Magnitudes can be compared with the usual operators.
type Magnitude int8

const (
	EMinus9 Magnitude = -9
	EMinus6 Magnitude = -6
	EMinus3 Magnitude = -3
	E0      Magnitude = 0
	E3      Magnitude = 3
	E6      Magnitude = 6
	E9      Magnitude = 9
	E12     Magnitude = 12
	E15     Magnitude = 15
	E18     Magnitude = 18
	E21     Magnitude = 21
	E24     Magnitude = 24
	E27     Magnitude = 27
)

// Smallest and Largest are the bounds of the Magnitude range.
const (
	Smallest = EMinus9
	Largest  = E27
)

// Magnitudes lists every Magnitude in ascending order.
var Magnitudes = []Magnitude{
	EMinus9, EMinus6, EMinus3, E0, E3, E6, E9, E12, E15, E18, E21, E24, E27,
}

// Classify returns the Magnitude bucket containing v.
//
// The bucket is chosen from floor(log10(|v|)), rounded down to a
// multiple of three. Values of 10^27 and above collapse into E27.
// Zero classifies as E0, since its logarithm is undefined.
//
// Classify panics if |v| is below 10^-9. Counter exports never
// contain values that small, so such a value means the input did not
// come from a counter export at all.
func Classify(v float64) Magnitude {
	if v == 0 {
		return E0
	}
	exp := decade(math.Abs(v))
	switch {
	case exp >= int(Largest):
		return Largest
	case exp < int(Smallest):
		panic(fmt.Sprintf("statunit: value %v is below the smallest magnitude %s", v, Smallest))
	}
	// Floor division by 3, also for negative exponents.
	bucket := exp / 3
	if exp%3 != 0 && exp < 0 {
		bucket--
	}
	return Magnitude(bucket * 3)
}

// decade returns floor(log10(a)) for a > 0.
//
// math.Log10 is not exact at powers of ten (math.Log10(1000) is just
// below 3), so the estimate is corrected against math.Pow10, which is.
func decade(a float64) int {
	exp := int(math.Floor(math.Log10(a)))
	if math.Pow10(exp+1) <= a {
		exp++
	} else if math.Pow10(exp) > a {
		exp--
	}
	return exp
}

// Exponent returns the power of ten of m.
func (m Magnitude) Exponent() int {
	return int(m)
}

// Scale returns 10^m.Exponent().
func (m Magnitude) Scale() float64 {
	return math.Pow10(int(m))
}

// Valid reports whether m is one of the defined buckets.
func (m Magnitude) Valid() bool {
	return m >= Smallest && m <= Largest && m%3 == 0
}

// String returns the display suffix of m. E0 has an empty suffix, so
// that unscaled axes carry no annotation.
func (m Magnitude) String() string {
	if m == E0 {
		return ""
	}
	if !m.Valid() {
		return fmt.Sprintf("Magnitude(%d)", int(m))
	}
	return "E" + strconv.Itoa(int(m))
}

// Format formats val scaled by m, followed by m's suffix.
// For example, E6.Format(12345678) returns "12.345678E6".
func (m Magnitude) Format(val float64) string {
	buf := make([]byte, 0, 24)
	buf = strconv.AppendFloat(buf, val/m.Scale(), 'f', -1, 64)
	buf = append(buf, m.String()...)
	return string(buf)
}

// Min returns the smaller of a and b.
func Min(a, b Magnitude) Magnitude {
	if a < b {
		return a
	}
	return b
}

// CommonMagnitude returns the Magnitude shared by all values in vals:
// the classification of the value with the smallest absolute value.
// Zeros take part, so a set containing 0 has a common Magnitude of
// at most E0. An empty set yields E0.
func CommonMagnitude(vals []float64) Magnitude {
	if len(vals) == 0 {
		return E0
	}
	min := math.Abs(vals[0])
	for _, v := range vals[1:] {
		if v = math.Abs(v); v < min {
			min = v
		}
	}
	return Classify(min)
}
