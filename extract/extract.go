// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package extract turns synthesis run directories into Records.
//
// Each run is handled independently: its identity is decoded from the
// directory name, its slack and area are scraped from the run's
// reports, and the achieved cycle time is derived from the target
// frequency and the slack. A run that cannot be decoded or scraped is
// skipped and reported; it never stops the rest of the batch.
package extract

import (
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/synthdc/ppa/scrape"
	"github.com/synthdc/ppa/synthfmt"
	"github.com/synthdc/ppa/synthrun"
)

// Default phrases that locate the metrics in a quality-of-results
// report.
const (
	DefaultSlackPhrase = "Path Slack"
	DefaultAreaPhrase  = "Design Area"
)

// DelayNs returns the achieved cycle time in nanoseconds of a run with
// the given target frequency and worst slack. Positive slack means the
// run beat its target period.
func DelayNs(freqMHz int, slackNs float64) float64 {
	return 1000/float64(freqMHz) - slackNs
}

// NewRecord returns the Record for a run with identity d and the given
// scraped slack and area.
func NewRecord(d synthrun.Descriptor, slackNs, areaUm2 float64) *synthfmt.Record {
	return &synthfmt.Record{
		Width:   d.Width,
		Config:  d.Config,
		Mod:     d.Mod,
		Tech:    d.Tech,
		FreqMHz: d.FreqMHz,
		DelayNs: DelayNs(d.FreqMHz, slackNs),
		AreaUm2: areaUm2,
	}
}

// An Extractor extracts Records from run directories.
//
// The zero Extractor is ready to use and applies the default marker,
// report glob and phrases.
type Extractor struct {
	// Marker is the design name that precedes the run identity in
	// a run directory name. If empty, synthrun.DefaultMarker is
	// used.
	Marker string

	// Scraper locates and reads the reports of each run.
	Scraper scrape.Scraper

	// SlackPhrase and AreaPhrase name the report lines holding the
	// worst path slack and the design area.
	SlackPhrase string
	AreaPhrase  string

	// Workers bounds the number of runs extracted concurrently. If
	// zero, runtime.GOMAXPROCS(0) is used.
	Workers int

	// Log receives one warning for each skipped run. If nil,
	// nothing is logged.
	Log *logrus.Logger
}

// A Result is the outcome of extracting one run directory. Exactly
// one of Record and Err is non-nil. Err is a *synthrun.DecodeError or
// a *scrape.ScrapeError.
type Result struct {
	Dir    string
	Record *synthfmt.Record
	Err    error
}

func (e *Extractor) marker() string {
	if e.Marker == "" {
		return synthrun.DefaultMarker
	}
	return e.Marker
}

func (e *Extractor) phrases() (slack, area string) {
	slack, area = e.SlackPhrase, e.AreaPhrase
	if slack == "" {
		slack = DefaultSlackPhrase
	}
	if area == "" {
		area = DefaultAreaPhrase
	}
	return
}

func (e *Extractor) logger() *logrus.Logger {
	if e.Log != nil {
		return e.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// ExtractRun extracts the Record of a single run directory.
func (e *Extractor) ExtractRun(dir string) Result {
	d, err := synthrun.Decode(dir, e.marker())
	if err != nil {
		return Result{Dir: dir, Err: err}
	}
	slack, area := e.phrases()
	vals, err := e.Scraper.Scrape(dir, slack, area)
	if err != nil {
		return Result{Dir: dir, Err: err}
	}
	return Result{Dir: dir, Record: NewRecord(d, vals[0], vals[1])}
}

// Run extracts every directory in dirs. Runs are extracted
// concurrently, but the returned Records are in the order of dirs.
// Results holds one entry per directory that was attempted, also in
// the order of dirs; failed runs appear there with their error and
// are logged.
//
// If ctx is canceled, Run stops starting new extractions and returns
// what has completed.
func (e *Extractor) Run(ctx context.Context, dirs []string) ([]*synthfmt.Record, []Result) {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(dirs) {
		workers = len(dirs)
	}

	// Each worker writes only the slots of the indexes it receives.
	results := make([]Result, len(dirs))
	done := make([]bool, len(dirs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.ExtractRun(dirs[i])
				done[i] = true
			}
		}()
	}
feed:
	for i := range dirs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	log := e.logger()
	var recs []*synthfmt.Record
	var out []Result
	for i, res := range results {
		if !done[i] {
			continue
		}
		out = append(out, res)
		if res.Err != nil {
			fields := logrus.Fields{"dir": res.Dir, "err": res.Err}
			log.WithFields(fields).Warn("skipping run")
			continue
		}
		log.WithFields(logrus.Fields{"dir": res.Dir, "run": res.Record.String()}).Debug("extracted run")
		recs = append(recs, res.Record)
	}
	return recs, out
}

// Walk discovers the run directories under root and extracts them.
func (e *Extractor) Walk(ctx context.Context, root string) ([]*synthfmt.Record, []Result, error) {
	dirs, err := synthrun.Discover(root, e.marker())
	if err != nil {
		return nil, nil, err
	}
	e.logger().WithFields(logrus.Fields{"root": root, "runs": len(dirs)}).Info("discovered runs")
	recs, results := e.Run(ctx, dirs)
	return recs, results, nil
}
