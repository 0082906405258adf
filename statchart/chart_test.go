// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statchart

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/perfstat/statseries"
)

func testChart() *statseries.Chart {
	pals := statseries.DefaultPalettes()
	return &statseries.Chart{
		XLabel: "Ratio [True/False]",
		YLabel: "Instructions E6",
		YMax:   10,
		YTicks: 6,
		Series: []statseries.Series{
			{Kind: statseries.Total, Style: pals.Branching.Total, Points: []statseries.Point{{X: 0, Y: 3}, {X: 50, Y: 5}, {X: 100, Y: 7}}},
			{Kind: statseries.Core, Style: pals.Branchless.Core, Points: []statseries.Point{{X: 0, Y: 2}, {X: 50, Y: 4}, {X: 100, Y: 6}}},
			{Kind: statseries.Atom, Style: pals.Branchless.Atom},
		},
	}
}

func TestPlot(t *testing.T) {
	pl, err := Plot(testChart())
	if err != nil {
		t.Fatal(err)
	}
	if pl.Y.Min != 0 || pl.Y.Max != 10 {
		t.Errorf("got Y range [%v, %v], want [0, 10]", pl.Y.Min, pl.Y.Max)
	}
	if pl.X.Min != 0 || pl.X.Max != 100 {
		t.Errorf("got X range [%v, %v], want [0, 100]", pl.X.Min, pl.X.Max)
	}
	ticks := pl.Y.Tick.Marker.Ticks(0, 10)
	if len(ticks) != 6 || ticks[1].Value != 2 || ticks[5].Label != "10" {
		t.Errorf("got ticks %v", ticks)
	}
}

func TestPlotBadColor(t *testing.T) {
	c := testChart()
	c.Series[0].Style.Color = "orange"
	if _, err := Plot(c); err == nil {
		t.Errorf("want error for a bad color")
	}
}

func TestSave(t *testing.T) {
	d := t.TempDir()
	bars := &statseries.Chart{
		XLabel: "Instructions",
		Bars: []statseries.Bar{
			{Label: "Branching", Value: 12, Style: statseries.DefaultPalettes().Branching.Core},
			{Label: "Branchless", Value: 7, Style: statseries.DefaultPalettes().Branchless.Core},
		},
	}
	for _, name := range []string{"lines.png", "lines.svg", "bars.svg"} {
		c := testChart()
		if name == "bars.svg" {
			c = bars
		}
		path := filepath.Join(d, name)
		if err := Save(c, path, DefaultWidth, DefaultHeight); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	if err := Save(testChart(), filepath.Join(d, "chart.bmp"), DefaultWidth, DefaultHeight); err == nil {
		t.Errorf("want error for an unsupported format")
	}
}
