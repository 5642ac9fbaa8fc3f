// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synthrun decodes the identity of a synthesis run from the
// name of its run directory.
//
// Run directories follow the convention
//
//	.../runs/<marker>_<width><config>_<mod>_<tech>nm_<freq>/...
//
// for example runs/wallypipelinedcore_rv64gc_orig_sky130nm_500.
package synthrun

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultMarker is the design name that starts the structured part of
// a run directory name.
const DefaultMarker = "wallypipelinedcore"

// A Descriptor is the identity of one run, decoded from its path.
type Descriptor struct {
	Width   string // Instruction-set width, such as "rv64"
	Config  string // Feature configuration, such as "gc"
	Mod     string // Design variant, such as "orig"
	Tech    string // Technology, such as "sky130"
	FreqMHz int    // Target frequency
}

// String returns the run label, such as "rv64gc_orig_sky130_500".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s%s_%s_%s_%d", d.Width, d.Config, d.Mod, d.Tech, d.FreqMHz)
}

// A DecodeError reports a path that does not follow the run naming
// convention. The run is skipped; this is never fatal to a batch.
type DecodeError struct {
	Path string
	Msg  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: not a run directory: %s", e.Path, e.Msg)
}

var tokenRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

// widthLen is the length of the width prefix of the width/config token.
const widthLen = 4

// unitSuffix is the unit that trails the technology token.
const unitSuffix = "nm"

// Decode extracts the run identity from path. It splits path into
// alphanumeric tokens, finds the first token equal to marker and
// interprets the four following tokens as width/config, module,
// technology and target frequency.
func Decode(path, marker string) (Descriptor, error) {
	toks := tokenRe.FindAllString(path, -1)
	start := -1
	for i, tok := range toks {
		if tok == marker {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return Descriptor{}, &DecodeError{path, fmt.Sprintf("marker %q not found", marker)}
	}
	if len(toks)-start < 4 {
		return Descriptor{}, &DecodeError{path, fmt.Sprintf("want 4 fields after %q, found %d", marker, len(toks)-start)}
	}
	widthConfig, mod, techRaw, freqStr := toks[start], toks[start+1], toks[start+2], toks[start+3]

	var d Descriptor
	if len(widthConfig) <= widthLen {
		d.Width = widthConfig
	} else {
		d.Width, d.Config = widthConfig[:widthLen], widthConfig[widthLen:]
	}
	d.Mod = mod

	if len(techRaw) <= len(unitSuffix) {
		return Descriptor{}, &DecodeError{path, fmt.Sprintf("technology %q too short", techRaw)}
	}
	d.Tech = techRaw[:len(techRaw)-len(unitSuffix)]

	freq, err := strconv.Atoi(freqStr)
	if err != nil || freq <= 0 {
		return Descriptor{}, &DecodeError{path, fmt.Sprintf("bad target frequency %q", freqStr)}
	}
	d.FreqMHz = freq
	return d, nil
}
