// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// A Reader reads Records from a repaired perf export: a JSON array of
// record objects.
//
// Its API is modeled on bufio.Scanner. The Record returned by Record
// is overwritten by the next call to Scan; a caller should copy
// anything it needs to retain.
type Reader struct {
	dec      *json.Decoder
	fileName string

	started bool
	done    bool
	err     error

	rec Record
}

// NewReader constructs a reader to parse records from r. fileName is
// used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.dec = json.NewDecoder(ior)
	r.fileName = orUnknown(fileName)
	r.started, r.done, r.err = false, false, nil
	r.rec = Record{}
}

// Scan advances the reader to the next record and reports whether a
// record was read. If Scan reaches the end of the array or the input
// is malformed, it returns false, in which case the caller should use
// the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.done {
		return false
	}
	if !r.started {
		r.started = true
		tok, err := r.dec.Token()
		if err != nil {
			if err == io.EOF {
				r.err = &SyntaxError{FileName: r.fileName, Msg: "empty document"}
			} else {
				r.err = r.syntaxError(err)
			}
			return false
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			r.err = &SyntaxError{FileName: r.fileName, Offset: r.dec.InputOffset(), Msg: fmt.Sprintf("expected '[', found %v", tok)}
			return false
		}
	}

	if !r.dec.More() {
		// Consume the closing bracket.
		if _, err := r.dec.Token(); err != nil {
			r.err = r.syntaxError(err)
			return false
		}
		r.done = true
		// Nothing but white space may follow the array.
		tok, err := r.dec.Token()
		switch {
		case err == io.EOF:
		case err != nil:
			r.err = r.syntaxError(err)
		default:
			r.err = &SyntaxError{FileName: r.fileName, Offset: r.dec.InputOffset(), Msg: fmt.Sprintf("unexpected data after array: %v", tok)}
		}
		return false
	}

	var rec *Record
	if err := r.dec.Decode(&rec); err != nil {
		r.err = r.syntaxError(err)
		return false
	}
	if rec == nil {
		r.err = &SyntaxError{FileName: r.fileName, Offset: r.dec.InputOffset(), Msg: "null record"}
		return false
	}
	r.rec = *rec
	return true
}

func (r *Reader) syntaxError(err error) *SyntaxError {
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	switch {
	case errors.As(err, &se):
		return &SyntaxError{FileName: r.fileName, Offset: se.Offset, Msg: se.Error()}
	case errors.As(err, &te):
		return &SyntaxError{FileName: r.fileName, Offset: te.Offset, Msg: te.Error()}
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return &SyntaxError{FileName: r.fileName, Offset: r.dec.InputOffset(), Msg: "unexpected end of document"}
	}
	return &SyntaxError{FileName: r.fileName, Offset: r.dec.InputOffset(), Msg: err.Error()}
}

// Record returns the record that was just read by Scan.
func (r *Reader) Record() *Record {
	return &r.rec
}

// Err returns the error that stopped Scan, if any. If Scan stopped
// because it read the whole array, Err returns nil.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader, fileName string) ([]Record, error) {
	var recs []Record
	reader := NewReader(r, fileName)
	for reader.Scan() {
		recs = append(recs, *reader.Record())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
