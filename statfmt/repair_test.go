// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// rawExport is what "perf stat -j" writes with a decimal-comma locale.
const rawExport = `{"counter-value" : "3456789,000000", "unit" : "", "event" : "cpu_core/instructions:u/", "event-runtime" : 1041875, "pcnt-running" : 100,00, "metric-value" : "0,000000", "metric-unit" : "insn per cycle"}
{"counter-value" : "<not counted>", "unit" : "", "event" : "cpu_atom/instructions:u/", "event-runtime" : 0, "pcnt-running" : 0,00, "metric-value" : "0,000000", "metric-unit" : ""}
{"counter-value" : "1004538,000000", "unit" : "ns", "event" : "duration_time", "event-runtime" : 1004538, "pcnt-running" : 100,00, "metric-value" : "0,000000", "metric-unit" : ""}
`

func TestRepair(t *testing.T) {
	test := func(raw, want string) {
		t.Helper()
		if got := string(Repair([]byte(raw))); got != want {
			t.Errorf("for %q, got %q, want %q", raw, got, want)
		}
	}

	test("", "[]")
	test("\n", "[]")
	test(`{"a":1}`, `[{"a":1}]`)
	test("{\"a\":1}\n{\"a\":2}\n", `[{"a":1},{"a":2}]`)
	test(`{"a":"1,5"}`, `[{"a":"1.5"}]`)
	test(`{"a":12,5}`, `[{"a":12.5}]`)
	// A comma between a digit and a quote is a separator.
	test(`{"a":1,"b":2}`, `[{"a":1,"b":2}]`)
	// Thousands separators are not recognized.
	test(`{"a":12,345,678}`, `[{"a":12.345,678}]`)
	// Only one trailing comma is dropped.
	test("{}\n\n", "[{},]")
}

func TestRepairNoDecimalComma(t *testing.T) {
	bare := regexp.MustCompile(`\d,\d`)
	got := Repair([]byte(rawExport))
	for _, want := range []string{`"3456789.000000"`, `100.00`, `"1004538.000000"`} {
		if !bytes.Contains(got, []byte(want)) {
			t.Errorf("repaired document does not contain %s:\n%s", want, got)
		}
	}
	if loc := bare.FindIndex(got); loc != nil {
		t.Errorf("repaired document still contains a decimal comma at %d:\n%s", loc[0], got)
	}
}

func TestRepairElementCount(t *testing.T) {
	got := Repair([]byte(rawExport))
	var elems []json.RawMessage
	if err := json.Unmarshal(got, &elems); err != nil {
		t.Fatalf("repaired document is not JSON: %v\n%s", err, got)
	}
	lines := strings.Count(strings.TrimSuffix(rawExport, "\n"), "\n") + 1
	if len(elems) != lines {
		t.Errorf("got %d elements, want %d", len(elems), lines)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Repair([]byte(rawExport)), "ok.json"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// A newline inside an object breaks the repair.
	bad := Repair([]byte("{\"event\":\n\"a\"}\n"))
	err := Validate(bad, "bad.json")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want *SyntaxError, got %v", err)
	}
	if se.FileName != "bad.json" {
		t.Errorf("got file name %q, want bad.json", se.FileName)
	}
}

func TestWriteExisting(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	if err := WriteExisting(missing, []byte("[]")); !errors.Is(err, ErrNoDestination) {
		t.Fatalf("WriteExisting(missing) = %v, want ErrNoDestination", err)
	}
	if _, err := os.Stat(missing); err == nil {
		t.Fatalf("WriteExisting created %s", missing)
	}

	path := filepath.Join(dir, "out.json")
	if err := os.WriteFile(path, []byte("old contents that are longer"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := WriteExisting(path, []byte("[]")); err != nil {
		t.Fatalf("WriteExisting: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Errorf("file contains %q, want %q", got, "[]")
	}
}
