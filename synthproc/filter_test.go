// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthproc

import (
	"errors"
	"testing"
)

func TestFilter(t *testing.T) {
	recs := sweepData()
	check := func(q string, want int) {
		t.Helper()
		f, err := NewFilter(q)
		if err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		if got := len(f.Select(recs)); got != want {
			t.Errorf("%s: selected %d, want %d", q, got, want)
		}
	}

	check("*", 10)
	check("-*", 0)
	check("tech:sky130", 9)
	check("tech:gf12", 0)
	check("tech:sky130 width:rv32", 1)
	check("tech:sky130 AND -mod:orig", 1)
	check("width:(rv32 OR rv64) config:gc", 9)
	check("tech:sky90 OR width:rv32", 2)
	check("label:rv64gc", 9)
	check("config:/^g/", 9)
	check("tech:/^sky/ -tech:sky90", 9)
	check("freq:500", 3)
	check("freq>=1000", 5)
	check("freq<500", 1)
	check("freq>500 freq<=1100", 3)
	check("delay<1.0", 1)
	check("area>=140000", 3)
	check("timing:met", 6)
	check("timing:violated", 4)
	check("timing:met mod:orig tech:sky130 width:rv64", 3)
}

func TestFilterMargin(t *testing.T) {
	recs := sweepData()
	f, err := Timing{Margin: 0.5}.NewFilter("timing:violated")
	if err != nil {
		t.Fatal(err)
	}
	// Only 3000 MHz at 1ns falls below half its target.
	if got := len(f.Select(recs)); got != 1 {
		t.Errorf("selected %d, want 1", got)
	}
}

func TestFilterErrors(t *testing.T) {
	for _, test := range []struct {
		q   string
		msg string
		off int
	}{
		{"colour:red", `unknown key "colour"`, 0},
		{"tech:sky130 timing:late", "timing must be met or violated", 12},
		{"timing:/met/", "timing must be met or violated", 0},
		{"delay:1.0", "delay supports only comparisons", 0},
		{"tech>5", "tech is not numeric", 0},
		{"tech:(a OR", "expected value", 10},
	} {
		_, err := NewFilter(test.q)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%s: got %v, want *SyntaxError", test.q, err)
			continue
		}
		if se.Msg != test.msg || se.Off != test.off {
			t.Errorf("%s: got %q at %d, want %q at %d", test.q, se.Msg, se.Off, test.msg, test.off)
		}
		if se.Query != test.q {
			t.Errorf("%s: error query %q", test.q, se.Query)
		}
	}
}
