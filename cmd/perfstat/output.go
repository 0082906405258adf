// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/perfstat/statchart"
	"golang.org/x/perfstat/statseries"
	"golang.org/x/perfstat/storage/db"
	_ "golang.org/x/perfstat/storage/db/sqlite3"
)

// A namedChart is a chart and the image file it is saved to.
type namedChart struct {
	path  string
	chart *statseries.Chart
}

// name returns the name the chart is stored under: the base name of
// its image file without the extension.
func (n namedChart) name() string {
	base := filepath.Base(n.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("csv", false, "also print the chart's points as CSV")
	addDBFlags(cmd)
}

func addDBFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "store charts in the database at `dsn`")
	cmd.Flags().String("db-driver", "sqlite3", "database `driver`: sqlite3 or mysql")
}

func (a *app) openDB() (*db.DB, error) {
	dsn, err := a.requireString("db")
	if err != nil {
		return nil, err
	}
	driver := a.v.GetString("db-driver")
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return d, nil
}

// output saves every chart as an image, and prints or stores it as
// the flags ask.
func (a *app) output(cmd *cobra.Command, charts []namedChart) error {
	var store *db.DB
	if a.v.GetString("db") != "" {
		var err error
		if store, err = a.openDB(); err != nil {
			return err
		}
		defer store.Close()
	}

	for _, n := range charts {
		if err := statchart.Save(n.chart, n.path, statchart.DefaultWidth, statchart.DefaultHeight); err != nil {
			return err
		}
		a.log.Info("saved chart", zap.String("path", n.path), zap.Int("series", len(n.chart.Series)), zap.Int("bars", len(n.chart.Bars)))

		if a.v.GetBool("csv") {
			if err := statseries.WriteCSV(a.stdout, n.chart); err != nil {
				return err
			}
		}
		if store != nil {
			id, err := store.InsertChart(cmd.Context(), n.name(), n.chart)
			if err != nil {
				return fmt.Errorf("store %s: %w", n.name(), err)
			}
			a.log.Info("stored chart", zap.String("name", n.name()), zap.Int64("id", id))
		}
	}
	return nil
}
