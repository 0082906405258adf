// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statchart draws statseries charts with gonum/plot.
package statchart

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"golang.org/x/perfstat/statseries"
)

// Default page size of a saved chart.
const (
	DefaultWidth  = 20 * vg.Centimeter
	DefaultHeight = 12 * vg.Centimeter
)

const barWidth = 55

// Plot builds the gonum plot of c.
func Plot(c *statseries.Chart) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = c.Title
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.YLabel
	pl.Legend.Top = true
	pl.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	for i := range c.Series {
		s := &c.Series[i]
		if len(s.Points) == 0 {
			// Nothing to draw, and an empty line would
			// widen the axes to infinity.
			continue
		}
		if err := addSeries(pl, s); err != nil {
			return nil, err
		}
	}

	if len(c.Bars) > 0 {
		names := make([]string, len(c.Bars))
		for i, b := range c.Bars {
			clr, err := b.Style.RGBA()
			if err != nil {
				return nil, fmt.Errorf("bar %s: %w", b.Label, err)
			}
			bar, err := plotter.NewBarChart(plotter.Values{b.Value}, vg.Points(barWidth))
			if err != nil {
				return nil, fmt.Errorf("bar %s: %w", b.Label, err)
			}
			bar.XMin = float64(i)
			bar.Color = clr
			bar.LineStyle.Width = 0
			pl.Add(bar)
			names[i] = b.Label
		}
		pl.NominalX(names...)
	}

	pl.Y.Min = 0
	if c.YMax > 0 {
		pl.Y.Max = c.YMax
	}
	if c.YTicks > 0 {
		pl.Y.Tick.Marker = evenTicks(c.YTicks)
	}
	return pl, nil
}

func addSeries(pl *plot.Plot, s *statseries.Series) error {
	clr, err := s.Style.RGBA()
	if err != nil {
		return fmt.Errorf("series %s: %w", s.Label(), err)
	}
	xys := make(plotter.XYs, len(s.Points))
	for i, p := range s.Points {
		xys[i].X, xys[i].Y = p.X, p.Y
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("series %s: %w", s.Label(), err)
	}
	line.Color = clr
	line.Width = vg.Points(s.Style.LineWidth)
	points.Color = clr
	points.Radius = vg.Points(s.Style.PointSize)
	points.Shape = glyph(s.Style.Marker)

	pl.Add(line, points)
	pl.Legend.Add(s.Label(), line, points)
	return nil
}

func glyph(m statseries.Marker) draw.GlyphDrawer {
	if m == statseries.Square {
		return draw.BoxGlyph{}
	}
	return draw.CircleGlyph{}
}

// evenTicks returns a Ticker placing n evenly spaced labeled ticks
// between the axis bounds, both included.
func evenTicks(n int) plot.Ticker {
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if n < 2 || max <= min {
			return plot.DefaultTicks{}.Ticks(min, max)
		}
		step := (max - min) / float64(n-1)
		ticks := make([]plot.Tick, n)
		for i := range ticks {
			v := min + float64(i)*step
			ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 4, 64)}
		}
		return ticks
	})
}

// Save draws c into path. The image format is chosen from the
// extension of path: png, svg, pdf, eps, jpg or tiff.
func Save(c *statseries.Chart, path string, w, h vg.Length) error {
	pl, err := Plot(c)
	if err != nil {
		return err
	}
	if err := pl.Save(w, h, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}
