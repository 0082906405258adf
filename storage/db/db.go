// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores composed charts in a SQL database, so that the
// series of earlier sweeps can be listed and compared later.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/perfstat/statseries"
)

// DB is a high-level interface to a database of charts. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertChart  *sql.Stmt
	insertSeries *sql.Stmt
	insertPoint  *sql.Stmt
	insertBar    *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Charts (
	ChartID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Name VARCHAR(255),
	Created BIGINT,
	Title VARCHAR(255),
	XLabel VARCHAR(255),
	YLabel VARCHAR(255),
	YMax DOUBLE,
	YTicks INTEGER
);
CREATE TABLE IF NOT EXISTS Series (
	ChartID BIGINT UNSIGNED,
	SeriesIdx INTEGER,
	Kind INTEGER,
	Color VARCHAR(16),
	LineWidth DOUBLE,
	PointSize DOUBLE,
	Marker VARCHAR(16),
	Legend VARCHAR(255),
	PRIMARY KEY (ChartID, SeriesIdx),
	FOREIGN KEY (ChartID) REFERENCES Charts(ChartID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Points (
	ChartID BIGINT UNSIGNED,
	SeriesIdx INTEGER,
	PointIdx INTEGER,
	X DOUBLE,
	Y DOUBLE,
	PRIMARY KEY (ChartID, SeriesIdx, PointIdx),
	FOREIGN KEY (ChartID, SeriesIdx) REFERENCES Series(ChartID, SeriesIdx) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Bars (
	ChartID BIGINT UNSIGNED,
	BarIdx INTEGER,
	Label VARCHAR(255),
	Value DOUBLE,
	Color VARCHAR(16),
	LineWidth DOUBLE,
	PointSize DOUBLE,
	Marker VARCHAR(16),
	Legend VARCHAR(255),
	PRIMARY KEY (ChartID, BarIdx),
	FOREIGN KEY (ChartID) REFERENCES Charts(ChartID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ChartsName ON Charts(Name);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertChart, err = db.sql.Prepare("INSERT INTO Charts(Name, Created, Title, XLabel, YLabel, YMax, YTicks) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertSeries, err = db.sql.Prepare("INSERT INTO Series(ChartID, SeriesIdx, Kind, Color, LineWidth, PointSize, Marker, Legend) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertPoint, err = db.sql.Prepare("INSERT INTO Points(ChartID, SeriesIdx, PointIdx, X, Y) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertBar, err = db.sql.Prepare("INSERT INTO Bars(ChartID, BarIdx, Label, Value, Color, LineWidth, PointSize, Marker, Legend) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// InsertChart stores c under name and returns its ID.
func (db *DB) InsertChart(ctx context.Context, name string, c *statseries.Chart) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertChart).ExecContext(ctx, name, now().Unix(), c.Title, c.XLabel, c.YLabel, c.YMax, c.YTicks)
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	insertSeries := tx.StmtContext(ctx, db.insertSeries)
	insertPoint := tx.StmtContext(ctx, db.insertPoint)
	for i := range c.Series {
		s := &c.Series[i]
		st := s.Style
		if _, err = insertSeries.ExecContext(ctx, id, i, int(s.Kind), st.Color, st.LineWidth, st.PointSize, string(st.Marker), st.Legend); err != nil {
			return 0, err
		}
		for j, p := range s.Points {
			if _, err = insertPoint.ExecContext(ctx, id, i, j, p.X, p.Y); err != nil {
				return 0, err
			}
		}
	}

	insertBar := tx.StmtContext(ctx, db.insertBar)
	for i, b := range c.Bars {
		st := b.Style
		if _, err = insertBar.ExecContext(ctx, id, i, b.Label, b.Value, st.Color, st.LineWidth, st.PointSize, string(st.Marker), st.Legend); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// ErrNotFound is returned by Chart when no chart has the given ID.
var ErrNotFound = errors.New("chart not found")

// Chart returns the chart stored under id.
func (db *DB) Chart(ctx context.Context, id int64) (*statseries.Chart, error) {
	c := new(statseries.Chart)
	err := db.sql.QueryRowContext(ctx, "SELECT Title, XLabel, YLabel, YMax, YTicks FROM Charts WHERE ChartID = ?", id).
		Scan(&c.Title, &c.XLabel, &c.YLabel, &c.YMax, &c.YTicks)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chart %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Kind, Color, LineWidth, PointSize, Marker, Legend FROM Series WHERE ChartID = ? ORDER BY SeriesIdx", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s statseries.Series
		var kind int
		if err := rows.Scan(&kind, &s.Style.Color, &s.Style.LineWidth, &s.Style.PointSize, &s.Style.Marker, &s.Style.Legend); err != nil {
			rows.Close()
			return nil, err
		}
		s.Kind = statseries.Kind(kind)
		c.Series = append(c.Series, s)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.sql.QueryContext(ctx, "SELECT SeriesIdx, X, Y FROM Points WHERE ChartID = ? ORDER BY SeriesIdx, PointIdx", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var idx int
		var p statseries.Point
		if err := rows.Scan(&idx, &p.X, &p.Y); err != nil {
			rows.Close()
			return nil, err
		}
		if idx < 0 || idx >= len(c.Series) {
			rows.Close()
			return nil, fmt.Errorf("chart %d: point of unknown series %d", id, idx)
		}
		c.Series[idx].Points = append(c.Series[idx].Points, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.sql.QueryContext(ctx, "SELECT Label, Value, Color, LineWidth, PointSize, Marker, Legend FROM Bars WHERE ChartID = ? ORDER BY BarIdx", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var b statseries.Bar
		if err := rows.Scan(&b.Label, &b.Value, &b.Style.Color, &b.Style.LineWidth, &b.Style.PointSize, &b.Style.Marker, &b.Style.Legend); err != nil {
			rows.Close()
			return nil, err
		}
		c.Bars = append(c.Bars, b)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return c, nil
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	return err
}

// A ChartInfo describes a stored chart.
type ChartInfo struct {
	ID      int64
	Name    string
	Created time.Time
}

// Charts lists the stored charts named name, or all charts if name is
// empty, newest first.
func (db *DB) Charts(ctx context.Context, name string) ([]ChartInfo, error) {
	q := "SELECT ChartID, Name, Created FROM Charts"
	var args []interface{}
	if name != "" {
		q += " WHERE Name = ?"
		args = append(args, name)
	}
	q += " ORDER BY ChartID DESC"
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	var infos []ChartInfo
	for rows.Next() {
		var info ChartInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Name, &created); err != nil {
			rows.Close()
			return nil, err
		}
		info.Created = time.Unix(created, 0)
		infos = append(infos, info)
	}
	return infos, closeRows(rows)
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertChart, db.insertSeries, db.insertPoint, db.insertBar} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
