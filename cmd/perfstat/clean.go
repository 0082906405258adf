// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/perfstat/statfmt"
)

func (a *app) cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean -i RAW [-o OUT]",
		Short: "Repair a raw perf stat export into a JSON array",
		Args:  cobra.NoArgs,
		RunE:  a.runClean,
	}
	cmd.Flags().StringP("input-file", "i", "", "raw export `file` written by perf stat -j")
	cmd.Flags().StringP("output-file", "o", "", "existing `file` to overwrite with the repaired export (default stdout)")
	return cmd
}

func (a *app) runClean(cmd *cobra.Command, args []string) error {
	in, err := a.requireString("input-file")
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	doc := statfmt.Repair(raw)
	if err := statfmt.Validate(doc, in); err != nil {
		return err
	}

	out := a.v.GetString("output-file")
	if out == "" {
		_, err := fmt.Fprintf(a.stdout, "%s\n", doc)
		return err
	}
	if err := statfmt.WriteExisting(out, doc); err != nil {
		return err
	}
	a.log.Info("repaired export", zap.String("input", in), zap.String("output", out), zap.Int("bytes", len(doc)))
	return nil
}
