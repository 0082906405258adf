// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// A Files reads runs from a sequence of repaired export files, one
// Run per file.
//
// By default, each Run is labeled with its path. If AllowLabels is
// true, entries in Paths may be of the form label=path, and the label
// part is used instead.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowLabels indicates that custom labels are allowed in
	// Paths.
	AllowLabels bool

	// SweepPrefix, if non-empty, indicates that every path names
	// a sweep export of the form <SweepPrefix><x>.json. The sweep
	// value is taken from the file name into Run.X. Otherwise every
	// Run has an X of NaN.
	SweepPrefix string

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet.
	inputs []input

	run Run
	err error
}

type input struct {
	path  string
	label string
	x     float64
}

func (f *Files) init() {
	f.inputs = []input{}
	for _, path := range f.Paths {
		label := path
		if j := strings.Index(path, "="); f.AllowLabels && j >= 0 {
			label, path = path[:j], path[j+1:]
		}
		x := math.NaN()
		if f.SweepPrefix != "" {
			var err error
			if x, err = SweepValue(path, f.SweepPrefix); err != nil {
				f.err = err
				return
			}
		}
		f.inputs = append(f.inputs, input{path, label, x})
	}
}

// Scan reads the next file in the sequence and reports whether a run
// was read. The caller should use the Run method to get the run. If
// Scan reaches the end of the file sequence, or if an error occurs,
// it returns false. In this case, the caller should use the Err method
// to check for errors.
func (f *Files) Scan() bool {
	if f.inputs == nil {
		f.init()
	}
	if f.err != nil || len(f.inputs) == 0 {
		return false
	}
	inp := f.inputs[0]
	f.inputs = f.inputs[1:]

	file, err := os.Open(inp.path)
	if err != nil {
		f.err = err
		return false
	}
	defer file.Close()

	recs, err := ReadAll(file, inp.path)
	if err != nil {
		f.err = err
		return false
	}
	f.run = Run{Path: inp.path, Label: inp.label, X: inp.x, Records: recs}
	return true
}

// Run returns the run that was just read by Scan.
func (f *Files) Run() Run {
	return f.run
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// ReadRuns reads every file of f.
func ReadRuns(f *Files) ([]Run, error) {
	var runs []Run
	for f.Scan() {
		runs = append(runs, f.Run())
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// SweepPaths returns the path of the export for each sweep value in
// xs: dir/<prefix><x>.json.
func SweepPaths(dir, prefix string, xs []uint64) []string {
	paths := make([]string, len(xs))
	for i, x := range xs {
		paths[i] = filepath.Join(dir, prefix+strconv.FormatUint(x, 10)+".json")
	}
	return paths
}

// ReadSweep reads the exports of a sweep, one Run per value of xs, in
// the order of xs. Each Run carries the sweep value of its file name
// in X.
func ReadSweep(dir, prefix string, xs []uint64) ([]Run, error) {
	return ReadRuns(&Files{Paths: SweepPaths(dir, prefix, xs), SweepPrefix: prefix})
}

// SweepValue extracts the sweep value from the base name of an export
// path of the form <prefix><x>.json.
func SweepValue(path, prefix string) (float64, error) {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, ".json") {
		return 0, fmt.Errorf("statfmt: %s does not match %s<x>.json", path, prefix)
	}
	num := strings.TrimSuffix(strings.TrimPrefix(base, prefix), ".json")
	x, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("statfmt: %s: bad sweep value: %w", path, err)
	}
	return x, nil
}
