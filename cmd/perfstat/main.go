// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Perfstat repairs and charts hardware counter exports written by
// "perf stat -j", comparing a branching and a branchless variant of a
// workload.
//
// Usage:
//
//	perfstat clean -i RAW [-o OUT]
//	perfstat bar -b BRANCHING.json -l BRANCHLESS.json [--save-to bchar.svg]
//	perfstat line X... --json-dir DIR --branching-prefix P --branchless-prefix Q \
//		--save-to OUT --plot-type TYPE [--csv] [--keyed] [--summary] [--db DSN]
//	perfstat charts --db DSN [ID --save-to OUT]
//
// The clean command turns a raw export, which has one JSON object per
// line and may use decimal commas, into a JSON array. It prints the
// result, or with -o overwrites an existing file.
//
// The bar command draws the user-space core instructions of two
// single-run exports side by side.
//
// The line command reads the sweep exports DIR/P<x>.json and
// DIR/Q<x>.json for each x and draws one chart over x. The plot type
// is one of:
//
//	cpu-instructions    core, atom and total instructions
//	time-branch-misses  core branch-miss fraction and duration in seconds
//	merged              both, written to OUT-instructions.EXT and OUT-time.EXT
//
// By default the values of a sweep are matched to the x values by
// position. With --keyed, each value is matched to the x in the name
// of the file it came from, and a file without the counter is an
// error. The image format follows the extension of OUT (svg, png,
// pdf, eps, jpg or tiff). --csv also prints the chart's points as
// CSV; --summary prints per-x statistics of the core instructions.
//
// With --db, charts are also stored in a database, which the charts
// command lists and re-renders. The database driver is chosen with
// --db-driver, sqlite3 (the default) or mysql.
//
// Every flag can also be set in the file named by --config, or in an
// environment variable such as PERFSTAT_PLOT_TYPE. --palette names a
// TOML file overriding the colors, sizes and legends of the series.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	a := newApp(os.Stdout)
	err := a.rootCmd().Execute()
	if err != nil {
		fail(a.log, err)
	}
	if a.log != nil {
		a.log.Sync()
	}
}

// fail logs err and exits with status 1. log is nil if the command
// failed before the logger was built.
func fail(log *zap.Logger, err error) {
	if log == nil {
		fmt.Fprintf(os.Stderr, "perfstat: %v\n", err)
	} else {
		log.Error("perfstat failed", zap.Error(err))
		log.Sync()
	}
	os.Exit(1)
}
