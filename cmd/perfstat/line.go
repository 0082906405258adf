// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/perfstat/statagg"
	"golang.org/x/perfstat/statfmt"
	"golang.org/x/perfstat/statseries"
)

// Plot types of the line command.
const (
	cpuInstructions  = "cpu-instructions"
	timeBranchMisses = "time-branch-misses"
	merged           = "merged"
)

func (a *app) lineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line X...",
		Short: "Chart a sweep of exports over X",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runLine,
	}
	cmd.Flags().String("json-dir", ".", "`directory` holding the sweep exports")
	cmd.Flags().String("branching-prefix", "", "file name `prefix` of the branching exports")
	cmd.Flags().String("branchless-prefix", "", "file name `prefix` of the branchless exports")
	cmd.Flags().String("save-to", "", "output image `file`")
	cmd.Flags().String("plot-type", "", "`type` of chart: cpu-instructions, time-branch-misses or merged")
	cmd.Flags().Bool("keyed", false, "match values to X by file name instead of by position")
	cmd.Flags().Bool("summary", false, "print per-X statistics of the core instructions as CSV")
	addOutputFlags(cmd)
	return cmd
}

func parseXs(args []string) ([]uint64, error) {
	xs := make([]uint64, len(args))
	for i, arg := range args {
		x, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad sweep value %q: %w", arg, err)
		}
		xs[i] = x
	}
	return xs, nil
}

func (a *app) runLine(cmd *cobra.Command, args []string) error {
	xs, err := parseXs(args)
	if err != nil {
		return err
	}
	dir := a.v.GetString("json-dir")
	if fi, err := os.Stat(dir); err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	var prefixes [2]string
	for i, key := range []string{"branching-prefix", "branchless-prefix"} {
		if prefixes[i], err = a.requireString(key); err != nil {
			return err
		}
	}
	saveTo, err := a.requireString("save-to")
	if err != nil {
		return err
	}
	plotType := a.v.GetString("plot-type")

	a.log.Info("reading sweep",
		zap.Uint64s("x", xs),
		zap.String("dir", dir),
		zap.String("branching", prefixes[0]+"<x>.json"),
		zap.String("branchless", prefixes[1]+"<x>.json"))
	s := &statseries.Sweep{X: make([]float64, len(xs))}
	for i, x := range xs {
		s.X[i] = float64(x)
	}
	if s.Branching, err = statfmt.ReadSweep(dir, prefixes[0], xs); err != nil {
		return err
	}
	if s.Branchless, err = statfmt.ReadSweep(dir, prefixes[1], xs); err != nil {
		return err
	}

	opts := statseries.Options{Keyed: a.v.GetBool("keyed")}
	var charts []namedChart
	switch plotType {
	case cpuInstructions:
		c, err := statseries.Instructions(s, &a.pals, opts)
		if err != nil {
			return err
		}
		charts = append(charts, namedChart{saveTo, c})
	case timeBranchMisses:
		c, err := statseries.TimeBranchMisses(s, &a.pals, opts)
		if err != nil {
			return err
		}
		charts = append(charts, namedChart{saveTo, c})
	case merged:
		ic, err := statseries.Instructions(s, &a.pals, opts)
		if err != nil {
			return err
		}
		tc, err := statseries.TimeBranchMisses(s, &a.pals, opts)
		if err != nil {
			return err
		}
		charts = append(charts,
			namedChart{withSuffix(saveTo, "-instructions"), ic},
			namedChart{withSuffix(saveTo, "-time"), tc})
	default:
		return fmt.Errorf("unknown plot type %q (want %s, %s or %s)", plotType, cpuInstructions, timeBranchMisses, merged)
	}

	if a.v.GetBool("summary") {
		if err := a.summary(s); err != nil {
			return err
		}
	}
	return a.output(cmd, charts)
}

// withSuffix inserts suffix before the extension of path.
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// summary prints the statistics of the core instructions at each
// sweep value of both variants.
func (a *app) summary(s *statseries.Sweep) error {
	for i, v := range []struct {
		runs []statfmt.Run
		pal  *statseries.Palette
	}{{s.Branching, &a.pals.Branching}, {s.Branchless, &a.pals.Branchless}} {
		k, err := statagg.ByX(v.runs, statagg.CoreInstructions, statagg.CounterValue)
		if err != nil {
			return fmt.Errorf("%s: %w", v.pal.Name, err)
		}
		if err := statseries.WriteSummaryCSV(a.stdout, v.pal.Name, statagg.Summarize(k), i == 0); err != nil {
			return err
		}
	}
	return nil
}
