// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statseries

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/perfstat/internal/diff"
	"golang.org/x/perfstat/statagg"
)

func TestWriteCSV(t *testing.T) {
	pals := DefaultPalettes()
	c, err := Instructions(testSweep(), &pals, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, c); err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "instructions.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if d := diff.Diff(string(want), buf.String()); d != "" {
		t.Errorf("CSV differs from testdata/instructions.csv:\n%s", d)
	}
}

func TestWriteCSVBars(t *testing.T) {
	c := &Chart{Bars: []Bar{{Label: "Branching", Value: 12}, {Label: "Branchless", Value: 7.5}}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, c); err != nil {
		t.Fatal(err)
	}
	want := "series,x,y\nBranching,,12\nBranchless,,7.5\n"
	if d := diff.Diff(want, buf.String()); d != "" {
		t.Errorf("bars CSV mismatch:\n%s", d)
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	sums := []statagg.Summary{{X: 0, N: 2, Min: 1, Max: 3, Mean: 2, StdDev: 1.5}}
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, "Branching CORE", sums, true); err != nil {
		t.Fatal(err)
	}
	want := "series,x,n,min,max,mean,stddev\nBranching CORE,0,2,1,3,2,1.5\n"
	if d := diff.Diff(want, buf.String()); d != "" {
		t.Errorf("summary CSV mismatch:\n%s", d)
	}
}
