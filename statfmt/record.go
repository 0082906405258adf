// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statfmt reads the JSON export of "perf stat -j".
//
// The export as written by perf is not JSON: numbers may use a decimal
// comma, and records are separated by newlines instead of being
// wrapped in an array. Repair turns such an export into a JSON array,
// which Reader then decodes into Records.
package statfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// NotCounted is the counter value perf reports for an event that was
// not scheduled during the measurement.
const NotCounted = "<not counted>"

// A Record is a single counter reading.
type Record struct {
	// CounterValue is the counter reading as decimal text, or
	// NotCounted.
	CounterValue string `json:"counter-value"`
	Unit         string `json:"unit"`

	// Event is the counter identifier, such as
	// "cpu_core/instructions:u/". It is matched by substring, so
	// a single filter may select the same counter on several CPU
	// clusters.
	Event string `json:"event"`

	// Variance is nil if the export did not report it.
	Variance *float64 `json:"variance,omitempty"`

	EventRuntime uint64  `json:"event-runtime"`
	PcntRunning  float64 `json:"pcnt-running"`

	// MetricValue is a derived metric as decimal text, such as the
	// branch-miss percentage.
	MetricValue string `json:"metric-value"`
	MetricUnit  string `json:"metric-unit"`
}

// NotCounted reports whether the event was not counted.
func (r *Record) NotCounted() bool {
	return r.CounterValue == NotCounted
}

// Counter returns the integer part of the counter value. Any
// fractional part is truncated, not rounded, so "1234.999" yields
// 1234. A NotCounted record yields 0.
func (r *Record) Counter() (uint64, error) {
	if r.NotCounted() {
		return 0, nil
	}
	text := r.CounterValue
	if i := strings.IndexByte(text, '.'); i >= 0 {
		text = text[:i]
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, &ParseError{Field: "counter-value", Event: r.Event, Text: r.CounterValue, Err: err}
	}
	return v, nil
}

// Metric returns the metric value as a float. A NotCounted record
// yields 0, since perf leaves its metric empty.
func (r *Record) Metric() (float64, error) {
	if r.NotCounted() {
		return 0, nil
	}
	v, err := strconv.ParseFloat(r.MetricValue, 64)
	if err != nil {
		return 0, &ParseError{Field: "metric-value", Event: r.Event, Text: r.MetricValue, Err: err}
	}
	return v, nil
}

// A ParseError reports a counter or metric value that is not a number.
type ParseError struct {
	Field string // JSON field name
	Event string
	Text  string // the offending value
	Err   error  // the underlying strconv error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("event %q: bad %s %q: %v", e.Event, e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A Run is the set of records read from one export file.
type Run struct {
	// Path is the file the run was read from, or "" if it was
	// not read from a file.
	Path string

	// Label identifies the run in error messages and output. It
	// defaults to Path.
	Label string

	// X is the sweep value this run was measured at. It is NaN if
	// the run is not part of a sweep.
	X float64

	Records []Record
}
