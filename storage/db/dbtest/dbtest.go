// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens throwaway chart databases for tests.
package dbtest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/perfstat/storage/db"
	_ "golang.org/x/perfstat/storage/db/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "run tests against the MySQL server at this `dsn` (for example root:@tcp(localhost:3306)/) instead of in-memory SQLite")

// createEmptyMySQLDB makes a new, empty database for the test.
func createEmptyMySQLDB(t *testing.T, prefix string) (dsn string, cleanup func()) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}

	name := "perfstat-test-" + base64.RawURLEncoding.EncodeToString(buf)

	db, err := sql.Open("mysql", prefix)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}

	t.Logf("Using database %q", name)

	return prefix + name, func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewDB makes a connection to a testing database, either sqlite3 or
// MySQL depending on the -mysql flag. The database is closed and, for
// MySQL, dropped when the test finishes.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	var dropDB func()
	if *mysqlDSN != "" {
		driverName = "mysql"
		dataSourceName, dropDB = createEmptyMySQLDB(t, *mysqlDSN)
	}
	d, err := db.OpenSQL(driverName, dataSourceName)
	if err != nil {
		if dropDB != nil {
			dropDB()
		}
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
		if dropDB != nil {
			dropDB()
		}
	})

	// Make sure the database really is empty.
	charts, err := d.Charts(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(charts) != 0 {
		t.Fatalf("found %d chart(s), want 0", len(charts))
	}
	return d
}
