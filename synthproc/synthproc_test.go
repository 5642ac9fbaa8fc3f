// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthproc

import (
	"math"
	"reflect"
	"testing"

	"github.com/synthdc/ppa/synthfmt"
	"github.com/synthdc/ppa/synthmath"
	"github.com/synthdc/ppa/techspec"
)

func rec(width, config, mod, tech string, freq int, delay, area float64) *synthfmt.Record {
	return &synthfmt.Record{Width: width, Config: config, Mod: mod, Tech: tech, FreqMHz: freq, DelayNs: delay, AreaUm2: area}
}

// sweepData is a frequency sweep of sky130 rv64gc plus unrelated runs.
func sweepData() []*synthfmt.Record {
	return []*synthfmt.Record{
		rec("rv64", "gc", "orig", "sky130", 100, 9, 100000),
		rec("rv64", "gc", "orig", "sky130", 500, 1.9, 110000),
		rec("rv64", "gc", "orig", "sky130", 900, 1.0, 120000),
		rec("rv64", "gc", "orig", "sky130", 1000, 1.2, 130000),
		rec("rv64", "gc", "orig", "sky130", 1100, 1.0, 140000),
		rec("rv64", "gc", "orig", "sky130", 1300, 1.0, 150000),
		rec("rv64", "gc", "orig", "sky130", 3000, 1.0, 160000),
		rec("rv64", "gc", "nobpred", "sky130", 500, 1.8, 90000),
		rec("rv32", "e", "orig", "sky130", 500, 1.5, 40000),
		rec("rv64", "gc", "orig", "sky90", 1500, 0.7, 60000),
	}
}

func TestTimingBoundary(t *testing.T) {
	tm := Timing{Margin: 0.5}
	for _, test := range []struct {
		delay float64
		want  bool
	}{
		{1.5, true},
		{2, true}, // 1000/2 == 0.5*1000: achieved
		{2.5, false},
	} {
		r := rec("rv64", "gc", "orig", "sky130", 1000, test.delay, 1)
		if got := tm.Meets(r); got != test.want {
			t.Errorf("Meets(delay=%v) = %v, want %v", test.delay, got, test.want)
		}
	}

	// DefaultTiming: 1000/1.2 = 833 < 950.
	if DefaultTiming.Meets(rec("rv64", "gc", "orig", "sky130", 1000, 1.2, 1)) {
		t.Error("DefaultTiming accepted a run at 83% of target")
	}
	if !DefaultTiming.Meets(rec("rv64", "gc", "orig", "sky130", 1000, 1.0, 1)) {
		t.Error("DefaultTiming rejected a run at target")
	}

	// Delays of 1000/(0.95*freq), rounded to float64.
	for _, test := range []struct {
		freq  int
		delay float64
		want  bool
	}{
		{1000, 1.0526315789473684, true}, // achieves exactly 950
		{500, 2.1052631578947367, true},
		{1700, 0.6191950464396285, false}, // achieves 1614.9999999999998 < 1615
		{1900, 0.554016620498615, false},
	} {
		r := rec("rv64", "gc", "orig", "sky130", test.freq, test.delay, 1)
		if got := DefaultTiming.Meets(r); got != test.want {
			t.Errorf("DefaultTiming.Meets(freq=%d, delay=%v) = %v, want %v", test.freq, test.delay, got, test.want)
		}
	}
}

func TestSelectEmpty(t *testing.T) {
	recs := sweepData()
	got := Select(recs, Tech("gf12"))
	if got == nil || len(got) != 0 {
		t.Errorf("Select with no matches = %#v, want empty slice", got)
	}
	if got := Select(nil, All); got == nil || len(got) != 0 {
		t.Errorf("Select(nil) = %#v, want empty slice", got)
	}
	met, violated := Partition(nil, DefaultTiming)
	if len(met) != 0 || len(violated) != 0 {
		t.Errorf("Partition(nil) = %v, %v", met, violated)
	}
	sw := FreqSweep(recs, "gf12", "rv64", "gc", DefaultTiming, nil)
	if len(sw.Met) != 0 || len(sw.Violated) != 0 || !math.IsNaN(sw.MedianFreqMHz) {
		t.Errorf("empty sweep = %+v", sw)
	}
	if pts := Features(recs, "gf12", "rv64", "gc", 500); len(pts) != 0 {
		t.Errorf("Features = %v, want none", pts)
	}
}

func TestPredicates(t *testing.T) {
	recs := sweepData()
	count := func(p Predicate) int { return len(Select(recs, p)) }
	for _, test := range []struct {
		name string
		p    Predicate
		want int
	}{
		{"all", All, 10},
		{"tech", Tech("sky130"), 9},
		{"width", Width("rv32"), 1},
		{"config", Config("gc"), 9},
		{"mod", Mod("nobpred"), 1},
		{"freq", Freq(500), 3},
		{"and", And(Tech("sky130"), Freq(500)), 3},
		{"or", Or(Tech("sky90"), Width("rv32")), 2},
		{"not", Not(Tech("sky130")), 1},
		{"and()", And(), 10},
		{"or()", Or(), 0},
	} {
		if got := count(test.p); got != test.want {
			t.Errorf("%s: selected %d, want %d", test.name, got, test.want)
		}
	}
	met := count(MeetsTiming(DefaultTiming))
	violated := count(ViolatesTiming(DefaultTiming))
	if met+violated != len(recs) {
		t.Errorf("met %d + violated %d != %d", met, violated, len(recs))
	}
}

func TestWithoutOutliersIdempotent(t *testing.T) {
	recs := Select(sweepData(), Mod("orig"))
	med := MedianFreq(recs)
	once := WithoutOutliers(recs, med, nil)
	if len(once) >= len(recs) {
		t.Fatalf("nothing excluded from %d records", len(recs))
	}
	twice := WithoutOutliers(once, med, nil)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed the group:\n%v\n%v", once, twice)
	}

	if got := WithoutOutliers(nil, math.NaN(), nil); got == nil || len(got) != 0 {
		t.Errorf("empty group = %#v", got)
	}
	one := recs[:1]
	if got := WithoutOutliers(one, MedianFreq(one), nil); len(got) != 1 {
		t.Errorf("singleton group lost its record")
	}
}

func labels(pts []Point) []string {
	var out []string
	for _, p := range pts {
		out = append(out, p.Label)
	}
	return out
}

func TestFreqSweep(t *testing.T) {
	sw := FreqSweep(sweepData(), "sky130", "rv64", "gc", DefaultTiming, synthmath.DefaultOutlierPolicy)
	if sw.MedianFreqMHz != 1000 {
		t.Errorf("median = %v, want 1000", sw.MedianFreqMHz)
	}
	// 100 and 3000 MHz are outside (0.4, 1.4) times the median.
	if got, want := labels(sw.Met), []string{"500", "900"}; !reflect.DeepEqual(got, want) {
		t.Errorf("met = %v, want %v", got, want)
	}
	if got, want := labels(sw.Violated), []string{"1000", "1100", "1300"}; !reflect.DeepEqual(got, want) {
		t.Errorf("violated = %v, want %v", got, want)
	}
	if p := sw.Met[0]; p.X != 2 || p.Delay != 1.9 || p.Area != 110000 {
		t.Errorf("met[0] = %+v", p)
	}

	all := FreqSweep(sweepData(), "sky130", "rv64", "gc", DefaultTiming, synthmath.KeepAll)
	if n := len(all.Met) + len(all.Violated); n != 7 {
		t.Errorf("KeepAll sweep has %d points, want 7", n)
	}
}

func TestFeaturesAndConfigs(t *testing.T) {
	recs := sweepData()
	if got, want := labels(Features(recs, "sky130", "rv64", "gc", 500)), []string{"orig", "nobpred"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Features labels = %v, want %v", got, want)
	}
	pts := Configs(recs, "sky130", "orig", 500)
	if got, want := labels(pts), []string{"rv64gc", "rv32e"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Configs labels = %v, want %v", got, want)
	}
	if pts[1].X != 1.5 || pts[1].Delay != 1.5 || pts[1].Area != 40000 {
		t.Errorf("Configs point = %+v", pts[1])
	}
}

func TestNormalize(t *testing.T) {
	const tol = 1e-9
	tab := techspec.Defaults()
	for _, name := range tab.Names() {
		spec := tab[name]
		recs := Select(sweepData(), Tech(name))
		pts := Configs(recs, name, "orig", spec.TargetFreqMHz)
		for _, r := range recs {
			pts = append(pts, Point{X: r.DelayNs, Delay: r.DelayNs, Area: r.AreaUm2})
		}
		norm := Normalize(pts, spec)
		if len(norm) != len(pts) {
			t.Fatalf("%s: got %d points, want %d", name, len(norm), len(pts))
		}
		for i, p := range pts {
			if d := norm[i].Delay - p.Delay/spec.FO4Ns; math.Abs(d) > tol {
				t.Errorf("%s: delay %v normalized to %v", name, p.Delay, norm[i].Delay)
			}
			if d := norm[i].Area - p.Area/spec.RefAreaUm2; math.Abs(d) > tol*math.Max(1, p.Area/spec.RefAreaUm2) {
				t.Errorf("%s: area %v normalized to %v", name, p.Area, norm[i].Area)
			}
		}
	}
	if got := Normalize(nil, tab["sky90"]); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v", got)
	}
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(sweepData(), FieldTech, FieldWidth)
	var got []string
	var sizes []int
	for _, g := range groups {
		got = append(got, g.Label())
		sizes = append(sizes, len(g.Records))
	}
	if want := []string{"sky130 rv64", "sky130 rv32", "sky90 rv64"}; !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}
	if want := []int{8, 1, 1}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("sizes = %v, want %v", sizes, want)
	}
	if all := GroupBy(sweepData()); len(all) != 1 || len(all[0].Records) != 10 {
		t.Errorf("GroupBy with no fields = %v", all)
	}
	if none := GroupBy(nil, FieldMod); len(none) != 0 {
		t.Errorf("GroupBy(nil) = %v", none)
	}
}

func TestParseFields(t *testing.T) {
	got, err := ParseFields("tech, width,freq")
	if err != nil {
		t.Fatal(err)
	}
	if want := []Field{FieldTech, FieldWidth, FieldFreq}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, err := ParseFields(""); err != nil || len(got) != 0 {
		t.Errorf("ParseFields(\"\") = %v, %v", got, err)
	}
	if _, err := ParseFields("tech,colour"); err == nil {
		t.Error("unknown field accepted")
	}
}
