// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/perfstat/statchart"
)

func (a *app) chartsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts --db DSN [ID --save-to OUT]",
		Short: "List stored charts, or render one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runCharts,
	}
	cmd.Flags().String("name", "", "list only the charts stored under `name`")
	cmd.Flags().String("save-to", "", "output image `file` for chart ID")
	addDBFlags(cmd)
	return cmd
}

func (a *app) runCharts(cmd *cobra.Command, args []string) error {
	store, err := a.openDB()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmd.Context()

	if len(args) == 0 {
		infos, err := store.Charts(ctx, a.v.GetString("name"))
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCREATED")
		for _, info := range infos {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", info.ID, info.Name, info.Created.UTC().Format(time.RFC3339))
		}
		return tw.Flush()
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad chart ID %q: %w", args[0], err)
	}
	saveTo, err := a.requireString("save-to")
	if err != nil {
		return err
	}
	c, err := store.Chart(ctx, id)
	if err != nil {
		return err
	}
	return statchart.Save(c, saveTo, statchart.DefaultWidth, statchart.DefaultHeight)
}
