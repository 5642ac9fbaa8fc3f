// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"encoding/csv"
	"io"
	"strconv"
)

// A Writer writes dataset files.
type Writer struct {
	cw    *csv.Writer
	first bool
	row   []string
}

// NewWriter returns a writer that writes dataset rows to w. The header
// row is written before the first record.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w), first: true, row: make([]string, numCols)}
}

// Write writes rec as one row. Frequencies are written as integers and
// measurements as plain decimals with a decimal point, so that a
// Reader coerces them back to the same kinds.
func (w *Writer) Write(rec *Record) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.row[colWidth] = rec.Width
	w.row[colConfig] = rec.Config
	w.row[colMod] = rec.Mod
	w.row[colTech] = rec.Tech
	w.row[colFreq] = strconv.Itoa(rec.FreqMHz)
	w.row[colDelay] = formatFloat(rec.DelayNs)
	w.row[colArea] = formatFloat(rec.AreaUm2)
	return w.cw.Write(w.row)
}

func (w *Writer) writeHeader() error {
	if !w.first {
		return nil
	}
	w.first = false
	return w.cw.Write(Header)
}

// Flush writes any buffered data, including the header row if no
// records were written, and reports any error that occurred.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.cw.Flush()
	return w.cw.Error()
}
