// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statagg

import "github.com/aclements/go-moremath/stats"

// A Summary describes the values recorded at one sweep value.
type Summary struct {
	X        float64
	N        int
	Min, Max float64
	Mean     float64
	StdDev   float64 // sample standard deviation
}

// Summarize describes the values of k at each sweep value, in key
// order.
func Summarize(k *Keyed) []Summary {
	out := make([]Summary, 0, len(k.Keys))
	for _, x := range k.Keys {
		s := stats.Sample{Xs: k.Values[x]}
		lo, hi := s.Bounds()
		out = append(out, Summary{
			X:      x,
			N:      len(s.Xs),
			Min:    lo,
			Max:    hi,
			Mean:   s.Mean(),
			StdDev: s.StdDev(),
		})
	}
	return out
}
