// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package techspec holds per-technology calibration constants used to
// compare synthesis results across fabrication processes.
package techspec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// A Spec is the calibration of one technology library.
type Spec struct {
	Name string `yaml:"-"`

	// Color and Marker are used only when rendering charts.
	Color  string `yaml:"color"`
	Marker string `yaml:"marker"`

	// TargetFreqMHz is the target frequency at which runs in
	// this technology are compared.
	TargetFreqMHz int `yaml:"targetFreqMHz"`

	// FO4Ns is the fan-out-of-4 inverter delay, the unit for
	// normalized cycle time.
	FO4Ns float64 `yaml:"fo4Ns"`

	// RefAreaUm2 is the area of a reference cell (a 32-bit adder),
	// the unit for normalized area.
	RefAreaUm2 float64 `yaml:"refAreaUm2"`

	// Add32LeakPower and Add32DynEnergy describe the same
	// reference adder. They are informational.
	Add32LeakPower float64 `yaml:"add32LeakPower,omitempty"`
	Add32DynEnergy float64 `yaml:"add32DynEnergy,omitempty"`
}

// NormDelay returns delayNs in FO4 delays.
func (s *Spec) NormDelay(delayNs float64) float64 {
	return delayNs / s.FO4Ns
}

// NormArea returns areaUm2 in reference-cell areas.
func (s *Spec) NormArea(areaUm2 float64) float64 {
	return areaUm2 / s.RefAreaUm2
}

func (s *Spec) validate() error {
	switch {
	case s.TargetFreqMHz <= 0:
		return fmt.Errorf("technology %s: targetFreqMHz must be positive", s.Name)
	case !(s.FO4Ns > 0):
		return fmt.Errorf("technology %s: fo4Ns must be positive", s.Name)
	case !(s.RefAreaUm2 > 0):
		return fmt.Errorf("technology %s: refAreaUm2 must be positive", s.Name)
	}
	return nil
}

// A Table maps technology names to their Specs.
type Table map[string]*Spec

// Names returns the technology names in t, sorted.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the Spec for tech.
func (t Table) Lookup(tech string) (*Spec, error) {
	if s, ok := t[tech]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown technology %q", tech)
}

// Defaults returns the calibration table for the libraries the
// synthesis flow supports.
func Defaults() Table {
	return Table{
		"sky130": {Name: "sky130", Color: "green", Marker: "o", TargetFreqMHz: 500,
			FO4Ns: 99.5e-3, RefAreaUm2: 2581, Add32LeakPower: 18, Add32DynEnergy: 0.685},
		"sky90": {Name: "sky90", Color: "gray", Marker: "o", TargetFreqMHz: 1500,
			FO4Ns: 43.2e-3, RefAreaUm2: 1440.600027, Add32LeakPower: 714.057, Add32DynEnergy: 0.658023},
		"tsmc28psyn": {Name: "tsmc28psyn", Color: "blue", Marker: "s", TargetFreqMHz: 5000,
			FO4Ns: 12.2e-3, RefAreaUm2: 209.286002, Add32LeakPower: 1060.0, Add32DynEnergy: .081533},
	}
}

// Load decodes a YAML table of the form
//
//	sky130:
//	  color: green
//	  marker: o
//	  targetFreqMHz: 500
//	  fo4Ns: 0.0995
//	  refAreaUm2: 2581
//
// Unknown fields are rejected.
func Load(r io.Reader) (Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var t Table
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("technology table: %w", err)
	}
	if err := t.fill(); err != nil {
		return nil, err
	}
	return t, nil
}

// fill sets each Spec's Name from its key and validates it.
func (t Table) fill() error {
	for _, name := range t.Names() {
		s := t[name]
		if s == nil {
			return fmt.Errorf("technology %s: empty entry", name)
		}
		s.Name = name
		if err := s.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate fills in names and checks every Spec in t.
func (t Table) Validate() error {
	return t.fill()
}

// LoadFile reads a YAML technology table from path.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// WithTargets returns a copy of t with the target frequencies
// overridden by targets, which maps technology names to MHz.
func (t Table) WithTargets(targets map[string]int) (Table, error) {
	t2 := make(Table, len(t))
	for name, s := range t {
		s2 := *s
		t2[name] = &s2
	}
	for name, freq := range targets {
		s, ok := t2[name]
		if !ok {
			return nil, fmt.Errorf("unknown technology %q", name)
		}
		s.TargetFreqMHz = freq
		if err := s.validate(); err != nil {
			return nil, err
		}
	}
	return t2, nil
}
