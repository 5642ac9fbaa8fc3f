// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the synthsum run configuration from YAML.
//
// A configuration file looks like
//
//	marker: wallypipelinedcore
//	reportGlob: reports/*qor*
//	slackPhrase: Path Slack
//	areaPhrase: Design Area
//	workers: 8
//	timingMargin: 0.95
//	outliers:
//	  lo: 0.4
//	  hi: 1.4
//	tech:
//	  gf12:
//	    color: purple
//	    targetFreqMHz: 3000
//	    fo4Ns: 0.009
//	    refAreaUm2: 120
//
// Every key is optional. Entries under tech replace or add to the
// built-in technology table.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/synthdc/ppa/extract"
	"github.com/synthdc/ppa/scrape"
	"github.com/synthdc/ppa/synthmath"
	"github.com/synthdc/ppa/synthproc"
	"github.com/synthdc/ppa/synthrun"
	"github.com/synthdc/ppa/techspec"
)

// Config is the run configuration of synthsum.
type Config struct {
	Marker      string `yaml:"marker"`
	ReportGlob  string `yaml:"reportGlob"`
	Occurrence  int    `yaml:"occurrence"`
	SlackPhrase string `yaml:"slackPhrase"`
	AreaPhrase  string `yaml:"areaPhrase"`

	// Workers bounds concurrent extraction. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	TimingMargin float64  `yaml:"timingMargin"`
	Outliers     Outliers `yaml:"outliers"`

	Tech techspec.Table `yaml:"tech"`
}

// Outliers selects the outlier policy for frequency sweeps. Disabled
// keeps every run; a positive Tolerance keeps runs within that
// relative distance of the median; otherwise runs are kept when their
// ratio to the median lies strictly between Lo and Hi.
type Outliers struct {
	Lo        float64 `yaml:"lo"`
	Hi        float64 `yaml:"hi"`
	Tolerance float64 `yaml:"tolerance"`
	Disabled  bool    `yaml:"disabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Marker:       synthrun.DefaultMarker,
		ReportGlob:   scrape.DefaultReportGlob,
		SlackPhrase:  extract.DefaultSlackPhrase,
		AreaPhrase:   extract.DefaultAreaPhrase,
		TimingMargin: synthproc.DefaultTiming.Margin,
		Outliers:     Outliers{Lo: 0.4, Hi: 1.4},
		Tech:         techspec.Defaults(),
	}
}

// Load decodes a YAML configuration over the defaults. Unknown keys
// are rejected.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	tech := cfg.Tech
	cfg.Tech = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	for name, s := range cfg.Tech {
		tech[name] = s
	}
	cfg.Tech = tech
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the configuration at path. An empty path yields the
// defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks c for values no run could use.
func (c *Config) Validate() error {
	switch {
	case c.Marker == "":
		return errors.New("config: marker must not be empty")
	case c.Workers < 0:
		return errors.New("config: workers must not be negative")
	case c.Occurrence < 0:
		return errors.New("config: occurrence must not be negative")
	case !(c.TimingMargin > 0):
		return errors.New("config: timingMargin must be positive")
	case c.Outliers.Tolerance < 0:
		return errors.New("config: outliers.tolerance must not be negative")
	case !c.Outliers.Disabled && c.Outliers.Tolerance == 0 && !(c.Outliers.Lo < c.Outliers.Hi):
		return fmt.Errorf("config: outlier band (%g, %g) is empty", c.Outliers.Lo, c.Outliers.Hi)
	}
	return c.Tech.Validate()
}

// Policy returns the outlier policy c selects.
func (c *Config) Policy() synthmath.OutlierPolicy {
	switch {
	case c.Outliers.Disabled:
		return synthmath.KeepAll
	case c.Outliers.Tolerance > 0:
		return synthmath.Tolerance(c.Outliers.Tolerance)
	}
	return synthmath.RatioBand{Lo: c.Outliers.Lo, Hi: c.Outliers.Hi}
}

// Timing returns the timing classification c selects.
func (c *Config) Timing() synthproc.Timing {
	return synthproc.Timing{Margin: c.TimingMargin}
}

// Extractor returns an extractor configured by c that logs to log.
func (c *Config) Extractor(log *logrus.Logger) *extract.Extractor {
	return &extract.Extractor{
		Marker:      c.Marker,
		Scraper:     scrape.Scraper{ReportGlob: c.ReportGlob, Occurrence: c.Occurrence},
		SlackPhrase: c.SlackPhrase,
		AreaPhrase:  c.AreaPhrase,
		Workers:     c.Workers,
		Log:         log,
	}
}
