// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statseries

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/perfstat/statagg"
	"golang.org/x/perfstat/statfmt"
)

func counterRun(label string, x float64, core, atom string) statfmt.Run {
	var recs []statfmt.Record
	if core != "" {
		recs = append(recs, statfmt.Record{Event: "cpu_core/instructions:u/", CounterValue: core})
	}
	if atom != "" {
		recs = append(recs, statfmt.Record{Event: "cpu_atom/instructions:u/", CounterValue: atom})
	}
	recs = append(recs, statfmt.Record{Event: "cpu_core/branches:u/", CounterValue: "1"})
	return statfmt.Run{Label: label, X: x, Records: recs}
}

func testSweep() *Sweep {
	return &Sweep{
		X: []float64{0, 50, 100},
		Branching: []statfmt.Run{
			counterRun("br0", 0, "2000000000", statfmt.NotCounted),
			counterRun("br50", 50, "3000000000.4", "1000000"),
			counterRun("br100", 100, "4000000000", "0"),
		},
		Branchless: []statfmt.Run{
			counterRun("bl0", 0, "5000000", "500000"),
			counterRun("bl50", 50, "6000000", statfmt.NotCounted),
			counterRun("bl100", 100, "7000000", "250000"),
		},
	}
}

func points(c *Chart) map[string][]Point {
	m := make(map[string][]Point)
	for i := range c.Series {
		m[c.Series[i].Label()] = c.Series[i].Points
	}
	return m
}

func TestInstructions(t *testing.T) {
	pals := DefaultPalettes()
	c, err := Instructions(testSweep(), &pals, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c.YLabel != "Instructions E6" || c.YMax != 4001 || c.YTicks != 20 {
		t.Errorf("got axis %q max %v ticks %d", c.YLabel, c.YMax, c.YTicks)
	}
	want := map[string][]Point{
		"Branching TOTAL":  {{0, 2000}, {50, 3001}, {100, 4000}},
		"Branching CORE":   {{0, 2000}, {50, 3000}, {100, 4000}},
		"Branching ATOM":   {{50, 1}},
		"Branchless TOTAL": {{0, 5.5}, {50, 6}, {100, 7.25}},
		"Branchless CORE":  {{0, 5}, {50, 6}, {100, 7}},
		"Branchless ATOM":  {{0, 0.5}, {100, 0.25}},
	}
	if diff := cmp.Diff(want, points(c)); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	if c.Series[0].Style != pals.Branching.Total || c.Series[5].Style != pals.Branchless.Atom {
		t.Errorf("series styles out of order")
	}
}

func TestInstructionsKeyed(t *testing.T) {
	pals := DefaultPalettes()
	s := testSweep()
	// Runs out of sweep order pair wrongly by position but
	// correctly by key.
	s.Branching[0], s.Branching[2] = s.Branching[2], s.Branching[0]

	c, err := Instructions(s, &pals, Options{Keyed: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Point{{0, 2000}, {50, 3000}, {100, 4000}}, points(c)["Branching CORE"]); diff != "" {
		t.Errorf("keyed core mismatch (-want +got):\n%s", diff)
	}

	c, err = Instructions(s, &pals, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Point{{0, 4000}, {50, 3000}, {100, 2000}}, points(c)["Branching CORE"]); diff != "" {
		t.Errorf("positional core mismatch (-want +got):\n%s", diff)
	}
}

func TestInstructionsMissingCounter(t *testing.T) {
	pals := DefaultPalettes()
	s := testSweep()
	s.Branchless[1] = counterRun("bl50", 50, "", "10")

	_, err := Instructions(s, &pals, Options{})
	var le *LengthMismatchError
	if !errors.As(err, &le) {
		t.Errorf("positional: want *LengthMismatchError, got %v", err)
	}

	_, err = Instructions(s, &pals, Options{Keyed: true})
	var ee *statagg.EmptyError
	if !errors.As(err, &ee) || ee.Label != "bl50" {
		t.Errorf("keyed: want EmptyError for bl50, got %v", err)
	}

	s = testSweep()
	for i := range s.Branching {
		s.Branching[i] = counterRun(s.Branching[i].Label, s.Branching[i].X, "1", "")
	}
	if _, err := Instructions(s, &pals, Options{}); !errors.Is(err, statagg.ErrEmptyAggregation) {
		t.Errorf("no atom counters: want ErrEmptyAggregation, got %v", err)
	}

	if _, err := Instructions(&Sweep{}, &pals, Options{}); err == nil {
		t.Errorf("empty sweep: want error")
	}
}

func timeRun(label string, x float64, misses, duration string) statfmt.Run {
	return statfmt.Run{Label: label, X: x, Records: []statfmt.Record{
		{Event: "cpu_core/branch-misses:u/", CounterValue: "100", MetricValue: misses},
		{Event: "cpu_atom/branch-misses:u/", CounterValue: statfmt.NotCounted},
		{Event: "duration_time", CounterValue: duration, Unit: "ns"},
	}}
}

func TestTimeBranchMisses(t *testing.T) {
	pals := DefaultPalettes()
	s := &Sweep{
		X: []float64{0, 100},
		Branching: []statfmt.Run{
			timeRun("br0", 0, "50.0", "2500000000"),
			timeRun("br100", 100, "1.0", "500000000.7"),
		},
		Branchless: []statfmt.Run{
			timeRun("bl0", 0, "0.5", "1000000000"),
			timeRun("bl100", 100, "0.25", "1000000000"),
		},
	}
	for _, opts := range []Options{{}, {Keyed: true}} {
		c, err := TimeBranchMisses(s, &pals, opts)
		if err != nil {
			t.Fatal(err)
		}
		want := map[string][]Point{
			"Branching: Branch misses":  {{0, 0.5}, {100, 0.01}},
			"Branchless: Branch misses": {{0, 0.005}, {100, 0.0025}},
			"Branching: Duration [s]":   {{0, 2.5}, {100, 0.5}},
			"Branchless: Duration [s]":  {{0, 1}, {100, 1}},
		}
		if diff := cmp.Diff(want, points(c)); diff != "" {
			t.Errorf("%+v: series mismatch (-want +got):\n%s", opts, diff)
		}
		if c.YMax != 3.5 || c.YTicks != 16 {
			t.Errorf("got y max %v ticks %d", c.YMax, c.YTicks)
		}
		if c.Series[0].Kind != BranchMisses || c.Series[3].Kind != Duration {
			t.Errorf("series out of order")
		}
	}
}

func TestCompareInstructions(t *testing.T) {
	pals := DefaultPalettes()
	br := []statfmt.Record{
		{Event: "cpu_core/instructions:u/", CounterValue: "10.5"},
		{Event: "cpu_core/instructions:u/", CounterValue: "12"},
		{Event: "cpu_core/instructions:k/", CounterValue: "99"},
	}
	bl := []statfmt.Record{{Event: "cpu_core/instructions:u/", CounterValue: "7"}}
	c, err := CompareInstructions(br, bl, &pals)
	if err != nil {
		t.Fatal(err)
	}
	want := []Bar{
		{Label: "Branching", Value: 12, Style: pals.Branching.Core},
		{Label: "Branchless", Value: 7, Style: pals.Branchless.Core},
	}
	if diff := cmp.Diff(want, c.Bars); diff != "" {
		t.Errorf("bars mismatch (-want +got):\n%s", diff)
	}

	_, err = CompareInstructions(br, nil, &pals)
	if !errors.Is(err, statagg.ErrEmptyAggregation) {
		t.Errorf("want ErrEmptyAggregation, got %v", err)
	}
}
