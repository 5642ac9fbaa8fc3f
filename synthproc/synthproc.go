// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synthproc selects, groups and summarizes synthesis Records.
//
// Selection is by Predicate, either built from the helpers in this
// package or compiled from a filter query with NewFilter. Selecting
// nothing is not an error: every function here returns an empty
// result for an empty input.
//
// The series functions (FreqSweep, Features, Configs) produce the
// (delay, area, label) points that chart renderers consume, with
// outliers already excluded and, on request, normalized by a
// technology's calibration.
package synthproc

import (
	"github.com/synthdc/ppa/synthfmt"
)

// A Timing classifies runs as meeting or violating their target
// frequency. A run meets timing unless the frequency it achieved,
// 1000/DelayNs, is below Margin times its target frequency.
type Timing struct {
	Margin float64
}

// DefaultTiming accepts runs that achieve 95% of their target
// frequency.
var DefaultTiming = Timing{Margin: 0.95}

// Meets reports whether r meets timing. A run exactly at the margin
// meets timing. The comparison is made in floating point, so a delay
// computed as 1000/(Margin*FreqMHz) may land on either side of the
// margin after rounding.
func (t Timing) Meets(r *synthfmt.Record) bool {
	return !(1000/r.DelayNs < t.Margin*float64(r.FreqMHz))
}

// A Predicate reports whether a Record should be selected.
type Predicate func(r *synthfmt.Record) bool

// All selects every Record.
func All(r *synthfmt.Record) bool { return true }

// Tech selects Records for technology tech.
func Tech(tech string) Predicate {
	return func(r *synthfmt.Record) bool { return r.Tech == tech }
}

// Width selects Records with instruction-set width w.
func Width(w string) Predicate {
	return func(r *synthfmt.Record) bool { return r.Width == w }
}

// Config selects Records with feature configuration c.
func Config(c string) Predicate {
	return func(r *synthfmt.Record) bool { return r.Config == c }
}

// Mod selects Records of design variant mod.
func Mod(mod string) Predicate {
	return func(r *synthfmt.Record) bool { return r.Mod == mod }
}

// Freq selects Records with target frequency freqMHz.
func Freq(freqMHz int) Predicate {
	return func(r *synthfmt.Record) bool { return r.FreqMHz == freqMHz }
}

// MeetsTiming selects Records that meet timing under t.
func MeetsTiming(t Timing) Predicate {
	return t.Meets
}

// ViolatesTiming selects Records that violate timing under t.
func ViolatesTiming(t Timing) Predicate {
	return func(r *synthfmt.Record) bool { return !t.Meets(r) }
}

// And selects Records matched by every one of ps.
func And(ps ...Predicate) Predicate {
	return func(r *synthfmt.Record) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Or selects Records matched by any one of ps.
func Or(ps ...Predicate) Predicate {
	return func(r *synthfmt.Record) bool {
		for _, p := range ps {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// Not selects Records not matched by p.
func Not(p Predicate) Predicate {
	return func(r *synthfmt.Record) bool { return !p(r) }
}

// Select returns the Records in recs matched by pred, in order. It
// never returns nil.
func Select(recs []*synthfmt.Record, pred Predicate) []*synthfmt.Record {
	out := []*synthfmt.Record{}
	for _, r := range recs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Partition splits recs into the Records that meet timing under t and
// those that violate it, preserving order.
func Partition(recs []*synthfmt.Record, t Timing) (met, violated []*synthfmt.Record) {
	met, violated = []*synthfmt.Record{}, []*synthfmt.Record{}
	for _, r := range recs {
		if t.Meets(r) {
			met = append(met, r)
		} else {
			violated = append(violated, r)
		}
	}
	return met, violated
}
