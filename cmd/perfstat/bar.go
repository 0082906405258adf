// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/perfstat/statfmt"
	"golang.org/x/perfstat/statseries"
)

func (a *app) barCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bar -b BRANCHING.json -l BRANCHLESS.json",
		Short: "Compare the core instructions of two exports",
		Args:  cobra.NoArgs,
		RunE:  a.runBar,
	}
	cmd.Flags().StringP("in-branching-json", "b", "", "repaired export `file` of the branching variant")
	cmd.Flags().StringP("in-branchless-json", "l", "", "repaired export `file` of the branchless variant")
	cmd.Flags().String("save-to", "bchar.svg", "output image `file`")
	addOutputFlags(cmd)
	return cmd
}

func (a *app) runBar(cmd *cobra.Command, args []string) error {
	var recs [2][]statfmt.Record
	for i, key := range []string{"in-branching-json", "in-branchless-json"} {
		path, err := a.requireString(key)
		if err != nil {
			return err
		}
		if recs[i], err = readRecords(path); err != nil {
			return err
		}
	}

	c, err := statseries.CompareInstructions(recs[0], recs[1], &a.pals)
	if err != nil {
		return err
	}
	for _, b := range c.Bars {
		a.log.Info("core instructions", zap.String("variant", b.Label), zap.Float64("value", b.Value))
	}
	return a.output(cmd, []namedChart{{a.v.GetString("save-to"), c}})
}

// readRecords reads one repaired export.
func readRecords(path string) ([]statfmt.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return statfmt.ReadAll(f, path)
}
