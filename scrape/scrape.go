// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scrape extracts numeric metrics from the free-form text
// reports written by synthesis tools.
//
// A metric is named by a phrase, such as "Path Slack". Report files
// are searched line by line; a line matches a phrase if it contains
// the phrase and at least one decimal number. When several lines
// match, the Scraper picks one by a fixed rule: the Occurrence-th
// matching line, counting across files in lexical order and lines in
// file order, and from that line the first number.
package scrape

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultReportGlob selects the quality-of-results reports inside a
// run directory.
const DefaultReportGlob = "reports/*qor*"

// numberRe matches a decimal number with a mandatory fraction and an
// optional signed exponent, such as "-0.12" or "1.5e-3".
var numberRe = regexp.MustCompile(`-?\d+\.\d+(?:[eE][-+]?\d+)?`)

// ExtractNumbers returns every number in line, in order.
func ExtractNumbers(line string) []float64 {
	var out []float64
	for _, m := range numberRe.FindAllString(line, -1) {
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			// Only possible for out-of-range exponents.
			continue
		}
		out = append(out, f)
	}
	return out
}

// A Scraper reads metrics from the reports of one run directory.
type Scraper struct {
	// ReportGlob is the pattern, relative to the run directory,
	// that selects report files. If empty, DefaultReportGlob is
	// used.
	ReportGlob string

	// Occurrence selects which matching line supplies a metric
	// when a phrase matches several lines. 0 is the first match.
	Occurrence int
}

// A ScrapeError reports a run whose metrics could not be extracted.
// No record is produced for such a run.
type ScrapeError struct {
	Dir    string // Run directory
	Phrase string // Metric phrase, or "" for errors about the whole run
	Msg    string
}

func (e *ScrapeError) Error() string {
	if e.Phrase == "" {
		return fmt.Sprintf("%s: %s", e.Dir, e.Msg)
	}
	return fmt.Sprintf("%s: %q: %s", e.Dir, e.Phrase, e.Msg)
}

// Reports returns the report files of runDir, in lexical order.
func (s *Scraper) Reports(runDir string) ([]string, error) {
	glob := s.ReportGlob
	if glob == "" {
		glob = DefaultReportGlob
	}
	files, err := filepath.Glob(filepath.Join(runDir, glob))
	if err != nil {
		return nil, &ScrapeError{runDir, "", err.Error()}
	}
	sort.Strings(files)
	return files, nil
}

// Scrape returns one value for each phrase, in phrase order. If any
// phrase cannot be resolved, it returns a *ScrapeError and no values.
func (s *Scraper) Scrape(runDir string, phrases ...string) ([]float64, error) {
	if s.Occurrence < 0 {
		return nil, &ScrapeError{runDir, "", fmt.Sprintf("bad occurrence %d", s.Occurrence)}
	}
	files, err := s.Reports(runDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &ScrapeError{runDir, "", "no reports"}
	}

	// matches[i] collects the first number of each line
	// matching phrases[i], up to Occurrence+1 lines.
	matches := make([][]float64, len(phrases))
	want := s.Occurrence + 1
	for _, file := range files {
		if err := scanFile(file, phrases, matches, want); err != nil {
			return nil, &ScrapeError{runDir, "", err.Error()}
		}
	}

	vals := make([]float64, len(phrases))
	for i, phrase := range phrases {
		switch n := len(matches[i]); {
		case n == 0:
			return nil, &ScrapeError{runDir, phrase, "not found in reports"}
		case n < want:
			return nil, &ScrapeError{runDir, phrase, fmt.Sprintf("occurrence %d requested, found %d", s.Occurrence, n)}
		}
		vals[i] = matches[i][s.Occurrence]
	}
	return vals, nil
}

func scanFile(path string, phrases []string, matches [][]float64, limit int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		line := sc.Text()
		for i, phrase := range phrases {
			if len(matches[i]) >= limit || !strings.Contains(line, phrase) {
				continue
			}
			if m := numberRe.FindString(line); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					matches[i] = append(matches[i], v)
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
