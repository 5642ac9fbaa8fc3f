// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Header is the column order of a dataset file.
var Header = []string{"Width", "Config", "Mod", "Tech", "Target Freq", "Delay", "Area"}

// Column indexes into Header.
const (
	colWidth = iota
	colConfig
	colMod
	colTech
	colFreq
	colDelay
	colArea
	numCols
)

// A Reader reads dataset files.
//
// Its API is modeled on bufio.Scanner. Unlike the benchmark format,
// dataset files cannot be partially trusted, so the first malformed
// row stops the Reader and is reported by Err.
type Reader struct {
	cr       *csv.Reader
	fileName string
	line     int

	header bool // header row has been consumed
	rec    *Record
	err    error
}

// A PersistError reports a malformed row in a dataset file. It is
// fatal for the read operation.
type PersistError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *PersistError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader to parse a dataset from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	cr := csv.NewReader(r)
	// Field counts are checked by the Reader itself so the error
	// can name the expected columns.
	cr.FieldsPerRecord = -1
	return &Reader{cr: cr, fileName: fileName}
}

func (r *Reader) newPersistError(msg string) *PersistError {
	return &PersistError{r.fileName, r.line, msg}
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Record method to get
// the record. If Scan reaches EOF, hits an I/O error, or reads a
// malformed row, it returns false, in which case the caller should
// use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for {
		row, err := r.cr.Read()
		if err == io.EOF {
			r.rec = nil
			return false
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.line = perr.Line
				r.err = r.newPersistError(perr.Err.Error())
			} else {
				r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
			}
			return false
		}
		r.line, _ = r.cr.FieldPos(0)

		if !r.header {
			r.header = true
			continue
		}

		rec, perr := r.parseRow(row)
		if perr != nil {
			r.err = perr
			return false
		}
		r.rec = rec
		return true
	}
}

// parseRow coerces each cell of row and binds it to a Record field.
func (r *Reader) parseRow(row []string) (*Record, *PersistError) {
	if len(row) != numCols {
		return nil, r.newPersistError(fmt.Sprintf("expected %d fields, found %d", numCols, len(row)))
	}
	var vals [numCols]Value
	for i, cell := range row {
		vals[i] = ParseField(cell)
	}

	rec := &Record{
		Width:    vals[colWidth].Text,
		Config:   vals[colConfig].Text,
		Mod:      vals[colMod].Text,
		Tech:     vals[colTech].Text,
		fileName: r.fileName,
		line:     r.line,
	}

	freq := vals[colFreq]
	if freq.Kind != IntValue {
		return nil, r.newPersistError(fmt.Sprintf("%s: want int, found %s %q", Header[colFreq], freq.Kind, freq.Text))
	}
	if freq.Int <= 0 {
		return nil, r.newPersistError(fmt.Sprintf("%s: must be positive, found %d", Header[colFreq], freq.Int))
	}
	rec.FreqMHz = int(freq.Int)

	for _, f := range []struct {
		col int
		dst *float64
	}{{colDelay, &rec.DelayNs}, {colArea, &rec.AreaUm2}} {
		v := vals[f.col]
		if v.Kind == StringValue {
			return nil, r.newPersistError(fmt.Sprintf("%s: want number, found %q", Header[f.col], v.Text))
		}
		*f.dst = v.Float
	}
	return rec, nil
}

// Record returns the record that was just read by Scan.
//
// The Reader does not retain the returned Record, so callers may keep
// it without copying.
func (r *Reader) Record() *Record {
	return r.rec
}

// Err returns the first error that stopped Scan, if any. If Scan
// stopped because it read the input to completion, or if Scan has not
// yet returned false, Err returns nil.
func (r *Reader) Err() error {
	return r.err
}
