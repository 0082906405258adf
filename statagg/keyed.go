// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statagg

import (
	"fmt"
	"math"

	"golang.org/x/perfstat/statfmt"
)

// Keyed holds the values of a filter grouped by the sweep value of
// the run they came from.
type Keyed struct {
	Filter Filter

	// Keys lists the sweep values in the order their runs were
	// given, without duplicates.
	Keys []float64

	// Values maps a sweep value to the values of its runs.
	Values map[float64][]float64
}

// A MismatchError reports a sweep value that does not have exactly
// one value.
type MismatchError struct {
	Filter Filter
	X      float64
	N      int // number of values found for X
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("event %q at x=%v: found %d values, want 1", string(e.Filter), e.X, e.N)
}

// ByX decodes the records matching f, keyed by the sweep value of
// their run. Every run must be part of a sweep and must contain at
// least one matching record; a run without one fails with an error
// wrapping ErrEmptyAggregation that names the run.
func ByX(runs []statfmt.Run, f Filter, decode Decoder) (*Keyed, error) {
	k := &Keyed{Filter: f, Values: make(map[float64][]float64)}
	for i := range runs {
		run := &runs[i]
		if math.IsNaN(run.X) {
			return nil, fmt.Errorf("%s: run is not part of a sweep", run.Label)
		}
		vals, err := collect(runs[i:i+1], f, decode)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, &EmptyError{Filter: f, Label: run.Label}
		}
		if _, ok := k.Values[run.X]; !ok {
			k.Keys = append(k.Keys, run.X)
		}
		k.Values[run.X] = append(k.Values[run.X], vals...)
	}
	return k, nil
}

// One returns the single value recorded for x.
func (k *Keyed) One(x float64) (float64, error) {
	vals := k.Values[x]
	if len(vals) != 1 {
		return 0, &MismatchError{Filter: k.Filter, X: x, N: len(vals)}
	}
	return vals[0], nil
}

// All returns every value of k in key order.
func (k *Keyed) All() []float64 {
	var out []float64
	for _, x := range k.Keys {
		out = append(out, k.Values[x]...)
	}
	return out
}
