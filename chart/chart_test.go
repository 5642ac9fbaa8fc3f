// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot"

	"github.com/synthdc/ppa/synthproc"
	"github.com/synthdc/ppa/techspec"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sweep() synthproc.Sweep {
	return synthproc.Sweep{
		Met: []synthproc.Point{
			{X: 2, Delay: 1.9, Area: 110000, Label: "500"},
			{X: 1.25, Delay: 1.2, Area: 118000, Label: "800"},
		},
		Violated: []synthproc.Point{
			{X: 1, Delay: 1.2, Area: 130000, Label: "1000"},
		},
		MedianFreqMHz: 800,
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatalf("%s is empty", path)
	}
	return data
}

func TestFreqSweep(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, FreqSweepName("sky130", "rv64gc"))
	if err := FreqSweep(png, "sky130 rv64gc", sweep()); err != nil {
		t.Fatal(err)
	}
	if data := readFile(t, png); !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("%s is not a PNG", png)
	}

	svg := filepath.Join(dir, "sweep.svg")
	if err := FreqSweep(svg, "sky130 rv64gc", sweep()); err != nil {
		t.Fatal(err)
	}
	if data := readFile(t, svg); !strings.Contains(string(data), "<svg") {
		t.Errorf("%s is not an SVG", svg)
	}
}

func TestAreaDelay(t *testing.T) {
	spec := techspec.Defaults()["tsmc28psyn"]
	pts := []synthproc.Point{
		{X: 0.25, Delay: 0.25, Area: 20000, Label: "rv32e"},
		{X: 0.3, Delay: 0.3, Area: 90000, Label: "rv64gc"},
	}
	path := filepath.Join(t.TempDir(), ConfigsName("tsmc28psyn", "orig"))
	if err := AreaDelay(path, "tsmc28psyn_orig", pts, spec); err != nil {
		t.Fatal(err)
	}
	readFile(t, path)
}

func TestNormAreaDelay(t *testing.T) {
	tab := techspec.Defaults()
	var series []Series
	for _, name := range tab.Names() {
		spec := tab[name]
		pts := synthproc.Normalize([]synthproc.Point{
			{X: 10 * spec.FO4Ns, Delay: 10 * spec.FO4Ns, Area: 40 * spec.RefAreaUm2, Label: "rv32e"},
		}, spec)
		series = append(series, Series{Spec: spec, Points: pts})
	}
	// A technology with no points is left out.
	series = append(series, Series{Spec: &techspec.Spec{Name: "gf12", Color: "teal"}})
	path := filepath.Join(t.TempDir(), NormAreaDelayName)
	if err := NormAreaDelay(path, series); err != nil {
		t.Fatal(err)
	}
	readFile(t, path)
}

func TestUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.bmp")
	if err := AreaDelay(path, "x", nil, techspec.Defaults()["sky90"]); err == nil {
		t.Error("AreaDelay to .bmp succeeded")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("unexpected file %s", path)
	}
}

func TestFileNames(t *testing.T) {
	for _, test := range []struct{ got, want string }{
		{FreqSweepName("sky130", "rv64gc"), "freqSweep_sky130_rv64gc.png"},
		{FeaturesName("sky90", "rv32e", 1500), "features_sky90_rv32e_1500MHz.png"},
		{ConfigsName("tsmc28psyn", "orig"), "configs_tsmc28psyn_orig.png"},
	} {
		if test.got != test.want {
			t.Errorf("got %s, want %s", test.got, test.want)
		}
	}
}

func TestTechColor(t *testing.T) {
	if c := techColor("green", 5); c != namedColors["green"] {
		t.Errorf("green = %v", c)
	}
	if a, b := techColor("teal", 0), techColor("teal", 1); a == b {
		t.Errorf("palette colors 0 and 1 are both %v", a)
	}
}

func TestAreaAxis(t *testing.T) {
	p := plot.New()
	areaAxis(p, []synthproc.Point{{Area: 100}, {Area: 300}}, nil, []synthproc.Point{{Area: 200}})
	if p.Y.Min != 0 || math.Abs(p.Y.Max-330) > 1e-9 {
		t.Errorf("Y range = [%v, %v], want [0, 330]", p.Y.Min, p.Y.Max)
	}

	p = plot.New()
	min, max := p.Y.Min, p.Y.Max
	areaAxis(p)
	if p.Y.Min != min || p.Y.Max != max {
		t.Errorf("no points: Y range = [%v, %v], want unchanged [%v, %v]", p.Y.Min, p.Y.Max, min, max)
	}
}
