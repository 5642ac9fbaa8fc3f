// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sebdah/goldie/v2"
)

func testRecords() []*Record {
	return []*Record{
		{Width: "rv64", Config: "gc", Mod: "orig", Tech: "sky130", FreqMHz: 500, DelayNs: 2.0 - 0.3, AreaUm2: 123456.789},
		{Width: "rv32", Config: "e", Mod: "orig", Tech: "tsmc28psyn", FreqMHz: 5000, DelayNs: 0.25, AreaUm2: 2581},
		{Width: "rv64", Config: "gc", Mod: "nobpred", Tech: "sky90", FreqMHz: 1500, DelayNs: 0.5, AreaUm2: 98765.4321},
	}
}

var ignorePos = cmpopts.IgnoreUnexported(Record{})

func TestWriteGolden(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAll(&buf, testRecords()); err != nil {
		t.Fatal(err)
	}
	g := goldie.New(t)
	g.Assert(t, t.Name(), buf.Bytes())
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAll(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), strings.Join(Header, ",")+"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Summary.csv")
	want := testRecords()
	if err := WriteFile(path, want); err != nil {
		t.Fatal(err)
	}
	ds, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != len(want) {
		t.Fatalf("read %d records, want %d", ds.Len(), len(want))
	}
	if diff := cmp.Diff(want, ds.Records, ignorePos); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// Each cell must coerce back to the kind it was written as.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")[1:]
	for _, line := range lines {
		cells := strings.Split(line, ",")
		for i, want := range []Kind{StringValue, StringValue, StringValue, StringValue, IntValue, FloatValue, FloatValue} {
			if got := ParseField(cells[i]).Kind; got != want {
				t.Errorf("%s: column %s coerced to %v, want %v", line, Header[i], got, want)
			}
		}
	}

	// Position information is kept for diagnostics.
	if file, line := ds.Records[1].Pos(); file != path || line != 3 {
		t.Errorf("Pos() = %s:%d, want %s:3", file, line, path)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Summary.csv")
	if err := WriteFile(path, testRecords()); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, testRecords()[:1]); err != nil {
		t.Fatal(err)
	}
	ds, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 1 {
		t.Errorf("got %d records after overwrite, want 1", ds.Len())
	}
}

func TestReadCoercion(t *testing.T) {
	// Rows as written by other tools: integral measurements and
	// numeric-looking tags.
	const data = `Width,Config,Mod,Tech,Target Freq,Delay,Area
rv32,32,orig,sky90,1500,1,2500
rv64,gc,orig,sky130,500,1.7000000000000002,1.5e3
`
	ds, err := Read(strings.NewReader(data), "test")
	if err != nil {
		t.Fatal(err)
	}
	want := []*Record{
		{Width: "rv32", Config: "32", Mod: "orig", Tech: "sky90", FreqMHz: 1500, DelayNs: 1, AreaUm2: 2500},
		{Width: "rv64", Config: "gc", Mod: "orig", Tech: "sky130", FreqMHz: 500, DelayNs: 1.7000000000000002, AreaUm2: 1500},
	}
	if diff := cmp.Diff(want, ds.Records, ignorePos); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReadEmpty(t *testing.T) {
	for _, data := range []string{"", strings.Join(Header, ",") + "\n"} {
		ds, err := Read(strings.NewReader(data), "test")
		if err != nil {
			t.Errorf("%q: unexpected error %v", data, err)
			continue
		}
		if ds.Len() != 0 {
			t.Errorf("%q: got %d records, want 0", data, ds.Len())
		}
	}
}

func TestReadMalformed(t *testing.T) {
	const hdr = "Width,Config,Mod,Tech,Target Freq,Delay,Area\n"
	for _, test := range []struct {
		name string
		data string
		line int
		msg  string
	}{
		{"short", hdr + "rv64,gc,orig,sky130,500,1.7\n", 2, "expected 7 fields, found 6"},
		{"long", hdr + "rv64,gc,orig,sky130,500,1.7,1.0\nrv64,gc,orig,sky130,500,1.7,1.0,x\n", 3, "expected 7 fields, found 8"},
		{"float freq", hdr + "rv64,gc,orig,sky130,500.0,1.7,1.0\n", 2, `Target Freq: want int, found float "500.0"`},
		{"zero freq", hdr + "rv64,gc,orig,sky130,0,-1.5,-20.0\n", 2, "Target Freq: must be positive, found 0"},
		{"negative freq", hdr + "rv64,gc,orig,sky130,500,1.7,1.0\nrv64,gc,orig,sky130,-500,1.0,1.0\n", 3, "Target Freq: must be positive, found -500"},
		{"text delay", hdr + "rv64,gc,orig,sky130,500,slow,1.0\n", 2, `Delay: want number, found "slow"`},
		{"text area", hdr + "rv64,gc,orig,sky130,500,1.7,NaN\n", 2, `Area: want number, found "NaN"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			ds, err := Read(strings.NewReader(test.data), "test.csv")
			if ds != nil {
				t.Errorf("got partial dataset with %d records, want nil", ds.Len())
			}
			var perr *PersistError
			if !errors.As(err, &perr) {
				t.Fatalf("got error %v, want *PersistError", err)
			}
			if perr.Line != test.line || perr.Msg != test.msg || perr.FileName != "test.csv" {
				t.Errorf("got %s:%d: %s, want test.csv:%d: %s", perr.FileName, perr.Line, perr.Msg, test.line, test.msg)
			}
		})
	}
}

func TestReaderStopsAtError(t *testing.T) {
	const data = "Width,Config,Mod,Tech,Target Freq,Delay,Area\nrv64,gc,orig,sky130,500,1.7,1.0\nbad\nrv64,gc,orig,sky130,600,1.7,1.0\n"
	r := NewReader(strings.NewReader(data), "test")
	n := 0
	for r.Scan() {
		n++
	}
	if n != 1 {
		t.Errorf("scanned %d records before error, want 1", n)
	}
	if r.Err() == nil {
		t.Fatal("want error")
	}
	if r.Scan() {
		t.Error("Scan after error returned true")
	}
}
