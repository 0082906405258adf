// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statseries

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/perfstat/statagg"
)

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteCSV writes the points of c, one row per point, with a header
// row. Bars are written as rows with an empty x.
func WriteCSV(out io.Writer, c *Chart) error {
	w := csv.NewWriter(out)
	w.Write([]string{"series", "x", "y"})
	for i := range c.Series {
		s := &c.Series[i]
		for _, p := range s.Points {
			w.Write([]string{s.Label(), strof(p.X), strof(p.Y)})
		}
	}
	for _, b := range c.Bars {
		w.Write([]string{b.Label, "", strof(b.Value)})
	}
	w.Flush()
	return w.Error()
}

// WriteSummaryCSV writes per-sweep-value summaries of one filter,
// labeled with label.
func WriteSummaryCSV(out io.Writer, label string, sums []statagg.Summary, header bool) error {
	w := csv.NewWriter(out)
	if header {
		w.Write([]string{"series", "x", "n", "min", "max", "mean", "stddev"})
	}
	for _, s := range sums {
		w.Write([]string{label, strof(s.X), strconv.Itoa(s.N), strof(s.Min), strof(s.Max), strof(s.Mean), strof(s.StdDev)})
	}
	w.Flush()
	return w.Error()
}
