// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statseries

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/perfstat/statagg"
	"golang.org/x/perfstat/statfmt"
	"golang.org/x/perfstat/statunit"
)

// A Series is a labeled sequence of points drawn in one style.
type Series struct {
	Kind   Kind
	Style  Style
	Points []Point
}

// Label returns the legend text of s.
func (s *Series) Label() string {
	return s.Style.Legend
}

// A Bar is one bar of a categorical chart.
type Bar struct {
	Label string
	Value float64
	Style Style
}

// A Chart is a set of series (or bars) to draw on shared axes. It is
// a pure description; package statchart renders it.
type Chart struct {
	Title  string
	XLabel string
	YLabel string

	// YMax is the top of the Y axis. The bottom is always 0.
	// If YMax is 0, the range is derived from the data.
	YMax float64
	// YTicks is the maximum number of ticks on the Y axis, or 0
	// for the renderer's default.
	YTicks int

	Series []Series
	Bars   []Bar
}

// Options control how charts pair values with sweep values.
type Options struct {
	// Keyed pairs each value with the sweep value of the run it
	// came from, and fails if a sweep value does not have exactly
	// one value. Otherwise, values are paired by position, and the
	// chart fails only if the number of values differs from the
	// number of sweep values.
	Keyed bool
}

// A Sweep is the runs of both compared variants over the same sweep
// values.
type Sweep struct {
	X          []float64
	Branching  []statfmt.Run
	Branchless []statfmt.Run
}

func (s *Sweep) variants(pals *Palettes) [2]variant {
	return [2]variant{{s.Branching, &pals.Branching}, {s.Branchless, &pals.Branchless}}
}

type variant struct {
	runs []statfmt.Run
	pal  *Palette
}

var errNoSweep = errors.New("no sweep values")

// values returns the y value for each sweep value: in run order, or
// looked up by the sweep value of each run.
func (s *Sweep) values(runs []statfmt.Run, f statagg.Filter, decode statagg.Decoder, positional []float64, opts Options) ([]float64, error) {
	if !opts.Keyed {
		return positional, nil
	}
	k, err := statagg.ByX(runs, f, decode)
	if err != nil {
		return nil, err
	}
	return Lookup(s.X, k)
}

// Instructions composes the chart of retired instructions over the
// sweep. For each variant it shows the core and atom cluster counters
// and their total.
//
// All series share one Magnitude: the smaller of the two core
// counters' minimum Magnitudes. Atom points with a value of 0 are
// dropped, since a cluster that never ran the workload reports
// nothing.
func Instructions(s *Sweep, pals *Palettes, opts Options) (*Chart, error) {
	if len(s.X) == 0 {
		return nil, errNoSweep
	}
	type counters struct{ core, atom *statagg.Aggregate }
	var aggs [2]counters
	for i, v := range s.variants(pals) {
		var err error
		if aggs[i].core, err = statagg.Counters(v.runs, statagg.CoreInstructions); err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		if aggs[i].atom, err = statagg.Counters(v.runs, statagg.AtomInstructions); err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
	}

	mag := statunit.Min(aggs[0].core.MinMagnitude, aggs[1].core.MinMagnitude)
	ymax := aggs[0].core.Max + aggs[0].atom.Max
	if m := aggs[1].core.Max + aggs[1].atom.Max; m > ymax {
		ymax = m
	}

	c := &Chart{
		XLabel: "Ratio [True/False]",
		YLabel: strings.TrimSpace("Instructions " + mag.String()),
		YMax:   float64(ymax) / mag.Scale(),
		YTicks: 20,
	}
	for i, v := range s.variants(pals) {
		core, err := s.values(v.runs, statagg.CoreInstructions, statagg.CounterValue, aggs[i].core.Values, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		atom, err := s.values(v.runs, statagg.AtomInstructions, statagg.CounterValue, aggs[i].atom.Values, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		core, atom = ScaleBy(core, mag), ScaleBy(atom, mag)
		total, err := Sum(core, atom)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}

		for _, ser := range []struct {
			kind Kind
			ys   []float64
		}{{Total, total}, {Core, core}, {Atom, atom}} {
			ps, err := Pair(s.X, ser.ys)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", v.pal.Name, ser.kind, err)
			}
			if ser.kind == Atom {
				ps = DropZeros(ps)
			}
			c.Series = append(c.Series, Series{Kind: ser.kind, Style: v.pal.Style(ser.kind), Points: ps})
		}
	}
	return c, nil
}

// TimeBranchMisses composes the chart of the core branch-miss fraction
// and the wall-clock duration in seconds over the sweep.
func TimeBranchMisses(s *Sweep, pals *Palettes, opts Options) (*Chart, error) {
	if len(s.X) == 0 {
		return nil, errNoSweep
	}
	c := &Chart{
		XLabel: "Ratio [True/False]",
		YLabel: "Branch misses / Duration [s]",
		YMax:   3.5,
		YTicks: 16,
	}
	var misses, durations []Series
	for _, v := range s.variants(pals) {
		fr, err := statagg.BranchMissFractions(v.runs, statagg.CoreBranchMisses)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		if fr, err = s.values(v.runs, statagg.CoreBranchMisses, statagg.BranchMissFraction, fr, opts); err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		ps, err := Pair(s.X, fr)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", v.pal.Name, BranchMisses, err)
		}
		misses = append(misses, Series{Kind: BranchMisses, Style: v.pal.BranchMisses, Points: ps})

		dur, err := statagg.Durations(v.runs, statagg.DurationTime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		if dur, err = s.values(v.runs, statagg.DurationTime, statagg.Duration, dur, opts); err != nil {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		if ps, err = Pair(s.X, dur); err != nil {
			return nil, fmt.Errorf("%s %s: %w", v.pal.Name, Duration, err)
		}
		durations = append(durations, Series{Kind: Duration, Style: v.pal.Duration, Points: ps})
	}
	c.Series = append(misses, durations...)
	return c, nil
}

// coreInstructionsEvent is the exact event compared by
// CompareInstructions.
const coreInstructionsEvent = "cpu_core/instructions:u/"

// CompareInstructions composes a bar chart of the user-space core
// instructions of two single-run exports. If an export reports the
// counter more than once, the last reading is used.
func CompareInstructions(branching, branchless []statfmt.Record, pals *Palettes) (*Chart, error) {
	c := &Chart{XLabel: "Instructions"}
	for _, v := range []struct {
		recs []statfmt.Record
		pal  *Palette
	}{{branching, &pals.Branching}, {branchless, &pals.Branchless}} {
		var val uint64
		found := false
		for i := range v.recs {
			r := &v.recs[i]
			if r.Event != coreInstructionsEvent {
				continue
			}
			n, err := r.Counter()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", v.pal.Name, err)
			}
			val, found = n, true
		}
		if !found {
			return nil, fmt.Errorf("%s: %w", v.pal.Name, &statagg.EmptyError{Filter: coreInstructionsEvent})
		}
		c.Bars = append(c.Bars, Bar{Label: v.pal.Name, Value: float64(val), Style: v.pal.Core})
	}
	return c, nil
}
