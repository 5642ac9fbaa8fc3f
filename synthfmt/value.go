// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// A Kind is the type a cell was coerced to.
type Kind int

const (
	StringValue Kind = iota
	IntValue
	FloatValue
)

func (k Kind) String() string {
	switch k {
	case StringValue:
		return "string"
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Value is a single coerced dataset cell.
type Value struct {
	Kind  Kind
	Int   int64   // Set if Kind == IntValue
	Float float64 // Set if Kind == IntValue or FloatValue
	Text  string  // The original cell text
}

// ParseField coerces text to a Value. It tries an integer first, then
// a floating-point number, and otherwise keeps the text as a string.
// Surrounding white space is ignored for numeric parsing but retained
// in Text.
func ParseField(text string) Value {
	s := strings.TrimSpace(text)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Kind: IntValue, Int: i, Float: float64(i), Text: text}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && s != "" && !isSpecial(s) {
		return Value{Kind: FloatValue, Float: f, Text: text}
	}
	return Value{Kind: StringValue, Text: text}
}

// isSpecial reports whether s is one of the spellings ParseFloat
// accepts for infinities and NaN. Those are kept as text, since a
// tag such as "inf" or "nan" is far more likely than a non-finite
// measurement.
func isSpecial(s string) bool {
	s = strings.TrimLeft(s, "+-")
	switch strings.ToLower(s) {
	case "inf", "infinity", "nan":
		return true
	}
	return false
}

// String returns the canonical text form of v.
func (v Value) String() string {
	switch v.Kind {
	case IntValue:
		return strconv.FormatInt(v.Int, 10)
	case FloatValue:
		return formatFloat(v.Float)
	}
	return v.Text
}

// formatFloat formats f in plain decimal form with the fewest digits
// that round-trip, always including a decimal point so the text
// reloads as a float rather than an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}
