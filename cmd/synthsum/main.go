// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Synthsum extracts delay and area from synthesis run directories
// and summarizes, filters and plots the resulting dataset.
//
// Usage:
//
//	synthsum extract [-o Summary.csv] [--db driver:dsn] [--post cmd] [dir]
//	synthsum summary [-q query] [--by fields] [--html file] [Summary.csv]
//	synthsum filter -q query [Summary.csv]
//	synthsum plot [-d dir] [Summary.csv]
//
// Extract looks for run directories under dir/runs (dir defaults to
// the current directory), reads the worst path slack and design area
// from each run's reports and writes one row per run to the dataset
// file. Runs whose reports are missing or unreadable are skipped
// with a warning.
//
// Every command accepts --config, a YAML file that overrides the
// report phrases, outlier band, technology table and so on, and
// --verbose for debug logging.
//
// # Filtering
//
// The -q flag of summary and filter takes a query such as
//
//	tech:sky130 width:(rv32 OR rv64) freq>=500 timing:met
//
// Keys are tech, width, config, mod, label (width and config
// combined), freq, delay, area and timing. Values may be /regexps/.
// Terms are combined with AND, OR, - (not) and parentheses.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "synthsum:", err)
		os.Exit(1)
	}
}
