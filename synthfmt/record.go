// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synthfmt provides the record type and the tabular file
// format for synthesis summary datasets.
//
// A dataset file is comma-separated text with a fixed header row
// (see Header) followed by one row per synthesis run. The reader
// coerces every cell independently, trying an integer, then a
// floating-point number, then falling back to text, and binds the
// result to the typed fields of a Record.
//
// This package is designed to be used with the higher-level packages
// synthmath and synthproc.
package synthfmt

import "fmt"

// A Record is the summary of one completed synthesis run.
//
// Records are treated as values: once constructed they are not
// modified. Use Clone and modify the copy to "fix" a field.
type Record struct {
	// Width is the instruction-set width tag, such as "rv64".
	Width string
	// Config is the feature-configuration tag, such as "gc".
	Config string
	// Mod is the design-variant tag, such as "orig".
	Mod string
	// Tech is the fabrication library tag, such as "sky130".
	Tech string

	// FreqMHz is the target clock frequency of the run.
	FreqMHz int

	// DelayNs is the achieved cycle time in nanoseconds.
	DelayNs float64
	// AreaUm2 is the design area in square microns.
	AreaUm2 float64

	// fileName and line record where this Record was read from.
	fileName string
	line     int
}

// A RunKey is the identity of a run within one dataset snapshot.
// Re-extraction may produce several records with the same key;
// they represent re-runs and are never merged.
type RunKey struct {
	Width, Config, Mod, Tech string
	FreqMHz                  int
}

// Key returns the identity tuple of r.
func (r *Record) Key() RunKey {
	return RunKey{r.Width, r.Config, r.Mod, r.Tech, r.FreqMHz}
}

// Label returns the combined width and configuration, such as "rv64gc".
func (r *Record) Label() string {
	return r.Width + r.Config
}

// Pos returns the file name and line number of a Record that was
// read by a Reader. For Records that were not read from a file, it
// returns "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of r.
func (r *Record) Clone() *Record {
	r2 := *r
	return &r2
}

// String returns a compact description of r, for diagnostics.
func (r *Record) String() string {
	return fmt.Sprintf("%s%s_%s_%s_%d delay=%gns area=%gum^2", r.Width, r.Config, r.Mod, r.Tech, r.FreqMHz, r.DelayNs, r.AreaUm2)
}
