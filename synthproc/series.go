// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthproc

import (
	"strconv"

	"github.com/synthdc/ppa/synthfmt"
	"github.com/synthdc/ppa/synthmath"
	"github.com/synthdc/ppa/techspec"
)

// BaselineMod is the design variant swept across target frequencies.
const BaselineMod = "orig"

// A Point is one run placed on a chart.
type Point struct {
	// X is the horizontal coordinate. In a frequency sweep it is
	// the target cycle time in ns; elsewhere it equals Delay.
	X float64

	Delay float64 // Achieved cycle time
	Area  float64
	Label string
}

func point(x float64, r *synthfmt.Record, label string) Point {
	return Point{X: x, Delay: r.DelayNs, Area: r.AreaUm2, Label: label}
}

// MedianFreq returns the median target frequency of recs, or NaN if
// recs is empty.
func MedianFreq(recs []*synthfmt.Record) float64 {
	freqs := make([]float64, len(recs))
	for i, r := range recs {
		freqs[i] = float64(r.FreqMHz)
	}
	return synthmath.Median(freqs)
}

// WithoutOutliers returns the Records of recs whose target frequency p
// does not consider an outlier relative to medianFreq. A nil p means
// synthmath.DefaultOutlierPolicy.
func WithoutOutliers(recs []*synthfmt.Record, medianFreq float64, p synthmath.OutlierPolicy) []*synthfmt.Record {
	freqs := make([]float64, len(recs))
	for i, r := range recs {
		freqs[i] = float64(r.FreqMHz)
	}
	out := []*synthfmt.Record{}
	for _, i := range synthmath.ExcludeOutliers(freqs, medianFreq, p) {
		out = append(out, recs[i])
	}
	return out
}

// A Sweep is the result of a frequency sweep, split by timing.
type Sweep struct {
	Met      []Point
	Violated []Point

	// MedianFreqMHz is the median target frequency of all swept
	// runs, before outlier exclusion. It is NaN for an empty sweep.
	MedianFreqMHz float64
}

// FreqSweep returns the baseline runs of one technology and
// configuration across target frequencies. Each point's X is the
// target cycle time 1000/FreqMHz. Runs whose frequency p considers an
// outlier relative to the median frequency of all matching runs are
// left out of both partitions.
func FreqSweep(recs []*synthfmt.Record, tech, width, config string, t Timing, p synthmath.OutlierPolicy) Sweep {
	sel := Select(recs, And(Tech(tech), Width(width), Config(config), Mod(BaselineMod)))
	med := MedianFreq(sel)
	met, violated := Partition(sel, t)
	conv := func(recs []*synthfmt.Record) []Point {
		pts := []Point{}
		for _, r := range WithoutOutliers(recs, med, p) {
			pts = append(pts, point(1000/float64(r.FreqMHz), r, strconv.Itoa(r.FreqMHz)))
		}
		return pts
	}
	return Sweep{Met: conv(met), Violated: conv(violated), MedianFreqMHz: med}
}

// Features returns the runs of every design variant of one
// technology and configuration at freqMHz, labeled by variant.
func Features(recs []*synthfmt.Record, tech, width, config string, freqMHz int) []Point {
	pts := []Point{}
	for _, r := range Select(recs, And(Tech(tech), Width(width), Config(config), Freq(freqMHz))) {
		pts = append(pts, point(r.DelayNs, r, r.Mod))
	}
	return pts
}

// Configs returns the runs of every configuration of one technology
// and design variant at freqMHz, labeled by width and configuration.
func Configs(recs []*synthfmt.Record, tech, mod string, freqMHz int) []Point {
	pts := []Point{}
	for _, r := range Select(recs, And(Tech(tech), Mod(mod), Freq(freqMHz))) {
		pts = append(pts, point(r.DelayNs, r, r.Label()))
	}
	return pts
}

// Normalize returns a copy of pts with X and Delay in FO4 delays and
// Area in reference-cell areas of spec.
func Normalize(pts []Point, spec *techspec.Spec) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{
			X:     spec.NormDelay(p.X),
			Delay: spec.NormDelay(p.Delay),
			Area:  spec.NormArea(p.Area),
			Label: p.Label,
		}
	}
	return out
}
