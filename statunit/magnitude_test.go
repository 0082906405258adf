// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statunit

import (
	"math"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	test := func(num float64, want Magnitude) {
		t.Helper()
		if got := Classify(num); got != want {
			t.Errorf("for %v, got %s (%d), want %s (%d)", num, got, got, want, want)
		}
	}

	// Smoke tests
	test(0, E0)
	test(1, E0)
	test(-1, E0)
	test(500, E0)
	test(999, E0)
	test(999.999, E0)
	test(1000, E3)
	test(-1000, E3)
	test(1_000_000, E6)
	test(math.Nextafter(1_000_000, 0), E3)

	// Full range, at and just below every bucket boundary.
	for _, m := range Magnitudes {
		test(m.Scale(), m)
		test(m.Scale()*999, m)
		if m > Smallest {
			test(math.Nextafter(m.Scale(), 0), m-3)
		}
	}

	// Clamped at the top.
	test(1e27, E27)
	test(1e30, E27)
	test(math.MaxFloat64, E27)
}

func TestClassifyUnderflow(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Classify(1e-10) did not panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "below the smallest magnitude") {
			t.Fatalf("unexpected panic %v", r)
		}
	}()
	Classify(1e-10)
}

func TestScaleBounds(t *testing.T) {
	// For every representative decade, the value lies between the
	// scale of its bucket and the scale of the next bucket.
	for exp := -9; exp < 27; exp++ {
		for _, mant := range []float64{1, 2.5, 9.99} {
			x := mant * math.Pow10(exp)
			m := Classify(x)
			if m.Scale() > x || x >= m.Scale()*1000 {
				t.Errorf("for %v, got bucket %s with scale %v", x, m, m.Scale())
			}
		}
	}
}

func TestScaledIsNormalized(t *testing.T) {
	// Scaling a value by its own magnitude leaves a value in [1, 1000).
	for _, x := range []float64{1, 7, 42, 999, 1000, 123456, 9.87e8, 3.2e-5, 6.02e23} {
		y := x / Classify(x).Scale()
		if y < 1 || y >= 1000 {
			t.Errorf("for %v, scaled value %v out of [1, 1000)", x, y)
		}
	}
}

func TestString(t *testing.T) {
	test := func(m Magnitude, want string) {
		t.Helper()
		if got := m.String(); got != want {
			t.Errorf("for %d, got %q, want %q", int(m), got, want)
		}
	}
	test(EMinus9, "E-9")
	test(EMinus3, "E-3")
	test(E0, "")
	test(E3, "E3")
	test(E27, "E27")
	test(Magnitude(4), "Magnitude(4)")
}

func TestFormat(t *testing.T) {
	test := func(m Magnitude, val float64, want string) {
		t.Helper()
		if got := m.Format(val); got != want {
			t.Errorf("for %s.Format(%v), got %s, want %s", m, val, got, want)
		}
	}
	test(E0, 1, "1")
	test(E6, 12345678, "12.345678E6")
	test(E3, 500, "0.5E3")
	test(EMinus3, 0.25, "250E-3")
}

func TestOrdering(t *testing.T) {
	if Min(E9, E6) != E6 || Min(E6, E9) != E6 {
		t.Errorf("Min(E9, E6) != E6")
	}
	for i := 1; i < len(Magnitudes); i++ {
		if !(Magnitudes[i-1] < Magnitudes[i]) {
			t.Errorf("%s not below %s", Magnitudes[i-1], Magnitudes[i])
		}
	}
}

func TestCommonMagnitude(t *testing.T) {
	test := func(vals []float64, want Magnitude) {
		t.Helper()
		if got := CommonMagnitude(vals); got != want {
			t.Errorf("for %v, got %s, want %s", vals, got, want)
		}
	}
	test(nil, E0)
	test([]float64{2e9, 3e6}, E6)
	test([]float64{2e9, 0, 3e6}, E0)
	test([]float64{-4e4, 5e7}, E3)
}
