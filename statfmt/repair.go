// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/tidwall/gjson"
)

var decimalComma = regexp.MustCompile(`(\d+),(\d+)`)

// Repair converts a raw perf export into a JSON array.
//
// It rewrites, in order:
//
//  1. every decimal comma between two digit runs into a period,
//  2. every newline into a comma,
//  3. drops a trailing comma, and
//  4. wraps the result in brackets.
//
// Step 1 cannot tell a decimal comma from a thousands separator, so
// "12,345,678" becomes "12.345,678" before step 2 runs. perf never
// groups thousands in its JSON output.
//
// Repair does not check that the result is valid JSON. Use Validate
// for that, or let Reader report the error.
func Repair(raw []byte) []byte {
	doc := decimalComma.ReplaceAll(raw, []byte("$1.$2"))
	doc = bytes.ReplaceAll(doc, []byte("\n"), []byte(","))
	doc = bytes.TrimSuffix(doc, []byte(","))

	out := make([]byte, 0, len(doc)+2)
	out = append(out, '[')
	out = append(out, doc...)
	out = append(out, ']')
	return out
}

// Validate reports whether doc is syntactically valid JSON. fileName
// is used in the returned *SyntaxError.
func Validate(doc []byte, fileName string) error {
	if gjson.ValidBytes(doc) {
		return nil
	}
	return &SyntaxError{FileName: orUnknown(fileName), Msg: "repaired document is not valid JSON"}
}

// ErrNoDestination is returned by WriteExisting when the destination
// file does not exist.
var ErrNoDestination = errors.New("destination does not exist")

// WriteExisting replaces the contents of the existing file path with
// doc. It does not create path.
func WriteExisting(path string, doc []byte) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrNoDestination)
	} else if err != nil {
		return err
	}
	return os.WriteFile(path, doc, 0666)
}

// A SyntaxError reports malformed input: a document that is not a
// JSON array of records, even after repair.
type SyntaxError struct {
	FileName string
	Offset   int64 // byte offset of the error, or 0 if unknown
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s:#%d: %s", e.FileName, e.Offset, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
}

func orUnknown(fileName string) string {
	if fileName == "" {
		return "<unknown>"
	}
	return fileName
}
