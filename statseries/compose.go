// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statseries composes aggregated counter values into
// plot-ready series over a sweep.
package statseries

import (
	"fmt"

	"golang.org/x/perfstat/statagg"
	"golang.org/x/perfstat/statunit"
)

// A Point is one (x, y) pair of a series.
type Point struct {
	X, Y float64
}

// A LengthMismatchError reports two sequences that had to line up
// element by element but did not.
type LengthMismatchError struct {
	Op          string
	Left, Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: length mismatch: %d vs %d", e.Op, e.Left, e.Right)
}

// Pair pairs the i'th x with the i'th y.
func Pair(xs, ys []float64) ([]Point, error) {
	if len(xs) != len(ys) {
		return nil, &LengthMismatchError{"pair", len(xs), len(ys)}
	}
	ps := make([]Point, len(xs))
	for i := range xs {
		ps[i] = Point{xs[i], ys[i]}
	}
	return ps, nil
}

// Sum adds a and b element by element.
func Sum(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, &LengthMismatchError{"sum", len(a), len(b)}
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// ScaleBy divides every value of vals by m.Scale().
func ScaleBy(vals []float64, m statunit.Magnitude) []float64 {
	s := m.Scale()
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v / s
	}
	return out
}

// DropZeros returns the points of ps whose y is not 0. It is used for
// counters the hardware does not populate on every run, such as the
// counters of a CPU cluster the workload was never scheduled on.
func DropZeros(ps []Point) []Point {
	out := make([]Point, 0, len(ps))
	for _, p := range ps {
		if p.Y != 0 {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the single value of k at each x of xs.
// It fails if some x has no value or more than one.
func Lookup(xs []float64, k *statagg.Keyed) ([]float64, error) {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y, err := k.One(x)
		if err != nil {
			return nil, err
		}
		ys[i] = y
	}
	return ys, nil
}

// PairKeyed pairs each x of xs with the value k recorded for it.
func PairKeyed(xs []float64, k *statagg.Keyed) ([]Point, error) {
	ys, err := Lookup(xs, k)
	if err != nil {
		return nil, err
	}
	return Pair(xs, ys)
}
