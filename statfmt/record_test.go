// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"errors"
	"strconv"
	"testing"
)

func TestCounter(t *testing.T) {
	test := func(val string, want uint64) {
		t.Helper()
		r := Record{CounterValue: val, Event: "cpu_core/instructions:u/"}
		got, err := r.Counter()
		if err != nil {
			t.Errorf("for %q, unexpected error: %v", val, err)
		} else if got != want {
			t.Errorf("for %q, got %d, want %d", val, got, want)
		}
	}
	test("0", 0)
	test("500.0", 500)
	test("1234.999", 1234)
	test("1234", 1234)
	test("18446744073709551615.5", 18446744073709551615)
	test(NotCounted, 0)

	testErr := func(val string) {
		t.Helper()
		r := Record{CounterValue: val, Event: "cpu_core/instructions:u/"}
		_, err := r.Counter()
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("for %q, want *ParseError, got %v", val, err)
			return
		}
		if pe.Field != "counter-value" || pe.Text != val {
			t.Errorf("for %q, got %+v", val, pe)
		}
		if !errors.Is(err, strconv.ErrSyntax) && !errors.Is(err, strconv.ErrRange) {
			t.Errorf("for %q, error does not wrap a strconv error: %v", val, err)
		}
	}
	testErr("")
	testErr("-5")
	testErr("1,5")
	testErr("abc")
	testErr("18446744073709551616")
}

func TestMetric(t *testing.T) {
	r := Record{CounterValue: "12", MetricValue: "2.5"}
	if got, err := r.Metric(); err != nil || got != 2.5 {
		t.Errorf("got %v, %v, want 2.5", got, err)
	}
	r = Record{CounterValue: NotCounted, MetricValue: ""}
	if got, err := r.Metric(); err != nil || got != 0 {
		t.Errorf("not counted: got %v, %v, want 0", got, err)
	}
	r = Record{CounterValue: "12", MetricValue: "n/a"}
	var pe *ParseError
	if _, err := r.Metric(); !errors.As(err, &pe) || pe.Field != "metric-value" {
		t.Errorf("want metric-value *ParseError, got %v", err)
	}
}
