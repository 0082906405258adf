// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statagg extracts counter values for an event across a set
// of runs.
//
// The functions in this package walk runs in order and records within
// a run in order, so their results line up with the order of the
// runs. Callers that pair results with sweep values positionally
// depend on this; Keyed results avoid that dependency by carrying the
// sweep value of every run.
package statagg

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/perfstat/statfmt"
	"golang.org/x/perfstat/statunit"
)

// A Filter selects records whose event contains it as a substring.
// "cpu_core/instructions" matches "cpu_core/instructions:u/", and
// "instructions" matches the counter of every CPU cluster.
type Filter string

// Filters for the counters charted by this module.
const (
	CoreInstructions Filter = "cpu_core/instructions"
	AtomInstructions Filter = "cpu_atom/instructions"
	CoreBranchMisses Filter = "cpu_core/branch-misses"
	DurationTime     Filter = "duration_time"
)

// Match reports whether r is selected by f.
func (f Filter) Match(r *statfmt.Record) bool {
	return strings.Contains(r.Event, string(f))
}

// ErrEmptyAggregation is returned, wrapped in an *EmptyError, when no
// record matches a filter.
var ErrEmptyAggregation = errors.New("no matching records")

// An EmptyError reports a filter that matched nothing.
type EmptyError struct {
	Filter Filter
	// Label is the run that had no match, or "" if the whole set
	// of runs had none.
	Label string
}

func (e *EmptyError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s: event %q: %v", e.Label, string(e.Filter), ErrEmptyAggregation)
	}
	return fmt.Sprintf("event %q: %v", string(e.Filter), ErrEmptyAggregation)
}

func (e *EmptyError) Unwrap() error {
	return ErrEmptyAggregation
}

// An Aggregate is the series of counter values for one filter.
type Aggregate struct {
	Filter Filter

	// Values holds one value per matching record, in run order
	// and then record order.
	Values []float64

	// Min and Max are the bounds of the integer counter values.
	Min, Max uint64

	// MinMagnitude is the Magnitude of Min. It is reported rather
	// than applied, since a chart scales several aggregates by the
	// smallest MinMagnitude among them.
	MinMagnitude statunit.Magnitude
}

// Scaled returns a's values divided by m.Scale().
func (a *Aggregate) Scaled(m statunit.Magnitude) []float64 {
	s := m.Scale()
	out := make([]float64, len(a.Values))
	for i, v := range a.Values {
		out[i] = v / s
	}
	return out
}

// Counters aggregates the counter values of the records matching f
// across runs. Fractional parts of counter values are truncated, and
// records that were not counted contribute 0.
//
// Counters fails with an error wrapping ErrEmptyAggregation if
// nothing matches, and with a *statfmt.ParseError if a matching
// counter value is not a number.
func Counters(runs []statfmt.Run, f Filter) (*Aggregate, error) {
	var vals []uint64
	err := each(runs, f, func(_ *statfmt.Run, r *statfmt.Record) error {
		v, err := r.Counter()
		if err != nil {
			return err
		}
		vals = append(vals, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, &EmptyError{Filter: f}
	}

	agg := &Aggregate{Filter: f, Values: make([]float64, len(vals)), Min: vals[0], Max: vals[0]}
	for i, v := range vals {
		agg.Values[i] = float64(v)
		if v < agg.Min {
			agg.Min = v
		}
		if v > agg.Max {
			agg.Max = v
		}
	}
	agg.MinMagnitude = statunit.Classify(float64(agg.Min))
	return agg, nil
}

// BranchMissFractions returns the metric value of each record matching
// f as a fraction rather than a percentage. Records that were not
// counted contribute 0.
func BranchMissFractions(runs []statfmt.Run, f Filter) ([]float64, error) {
	return collect(runs, f, branchMissFraction)
}

func branchMissFraction(r *statfmt.Record) (float64, error) {
	v, err := r.Metric()
	return v / 100, err
}

// nsPerSec converts the duration_time counter, reported in
// nanoseconds, to seconds.
const nsPerSec = 1e9

// Durations returns the counter value in seconds of each record
// matching f, which should select a counter in nanoseconds such as
// DurationTime. Fractional nanoseconds are truncated.
func Durations(runs []statfmt.Run, f Filter) ([]float64, error) {
	return collect(runs, f, duration)
}

func duration(r *statfmt.Record) (float64, error) {
	v, err := r.Counter()
	return float64(v) / nsPerSec, err
}

func counter(r *statfmt.Record) (float64, error) {
	v, err := r.Counter()
	return float64(v), err
}

// A Decoder extracts a value from a matching record.
type Decoder func(r *statfmt.Record) (float64, error)

// Decoders for the three kinds of series.
var (
	CounterValue       Decoder = counter
	BranchMissFraction Decoder = branchMissFraction
	Duration           Decoder = duration
)

// collect decodes every record matching f. Unlike Counters, it does
// not require a match.
func collect(runs []statfmt.Run, f Filter, decode Decoder) ([]float64, error) {
	var vals []float64
	err := each(runs, f, func(_ *statfmt.Run, r *statfmt.Record) error {
		v, err := decode(r)
		if err != nil {
			return err
		}
		vals = append(vals, v)
		return nil
	})
	return vals, err
}

// each calls fn for each record of runs matching f, in order.
func each(runs []statfmt.Run, f Filter, fn func(run *statfmt.Run, r *statfmt.Record) error) error {
	for i := range runs {
		run := &runs[i]
		for j := range run.Records {
			r := &run.Records[j]
			if !f.Match(r) {
				continue
			}
			if err := fn(run, r); err != nil {
				if run.Label != "" {
					return fmt.Errorf("%s: %w", run.Label, err)
				}
				return err
			}
		}
	}
	return nil
}
