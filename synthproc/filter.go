// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthproc

import (
	"fmt"
	"strconv"

	"github.com/synthdc/ppa/synthfmt"
	"github.com/synthdc/ppa/synthproc/internal/query"
)

// A SyntaxError reports a malformed filter query. Off is the byte
// offset of the problem in Query.
type SyntaxError = query.SyntaxError

// A Filter selects Records matching a query.
type Filter struct {
	query string
	match Predicate
}

// NewFilter compiles a filter query, classifying timing with
// DefaultTiming. See Timing.NewFilter.
func NewFilter(q string) (*Filter, error) {
	return DefaultTiming.NewFilter(q)
}

// NewFilter compiles a filter query such as
//
//	tech:sky130 width:(rv32 OR rv64) -mod:orig freq>=500 timing:met
//
// A query is a boolean combination of terms. Terms separated by
// spaces or AND must all match; OR separates alternatives, "-"
// negates, parentheses group and "*" matches everything.
//
// A term key:value matches a field exactly, or against a regular
// expression if value is written /regexp/. The keys are tech, width,
// config, mod, label (width and config combined) and freq, plus
// timing, whose value is met or violated.
//
// The numeric keys freq, delay and area also accept comparisons:
// freq<1000, delay<=1.5, area>2e5.
func (t Timing) NewFilter(q string) (*Filter, error) {
	n, err := query.Parse(q)
	if err != nil {
		return nil, err
	}
	pred, err := t.compile(q, n)
	if err != nil {
		return nil, err
	}
	return &Filter{q, pred}, nil
}

// Match reports whether r matches f.
func (f *Filter) Match(r *synthfmt.Record) bool {
	return f.match(r)
}

// Select returns the Records in recs that match f.
func (f *Filter) Select(recs []*synthfmt.Record) []*synthfmt.Record {
	return Select(recs, f.match)
}

func (f *Filter) String() string {
	return f.query
}

var textKeys = map[string]func(*synthfmt.Record) string{
	"tech":   func(r *synthfmt.Record) string { return r.Tech },
	"width":  func(r *synthfmt.Record) string { return r.Width },
	"config": func(r *synthfmt.Record) string { return r.Config },
	"mod":    func(r *synthfmt.Record) string { return r.Mod },
	"label":  (*synthfmt.Record).Label,
	"freq":   func(r *synthfmt.Record) string { return strconv.Itoa(r.FreqMHz) },
}

var numericKeys = map[string]func(*synthfmt.Record) float64{
	"freq":  func(r *synthfmt.Record) float64 { return float64(r.FreqMHz) },
	"delay": func(r *synthfmt.Record) float64 { return r.DelayNs },
	"area":  func(r *synthfmt.Record) float64 { return r.AreaUm2 },
}

func (t Timing) compile(q string, n query.Node) (Predicate, error) {
	switch n := n.(type) {
	case *query.Op:
		subs := make([]Predicate, len(n.Exprs))
		for i, e := range n.Exprs {
			p, err := t.compile(q, e)
			if err != nil {
				return nil, err
			}
			subs[i] = p
		}
		switch n.Op {
		case query.OpAnd:
			return And(subs...), nil
		case query.OpOr:
			return Or(subs...), nil
		case query.OpNot:
			return Not(subs[0]), nil
		}

	case *query.Match:
		if n.Key == "timing" {
			switch {
			case n.Regexp != nil:
				return nil, &SyntaxError{Query: q, Off: n.Off, Msg: "timing must be met or violated"}
			case n.Lit == "met":
				return MeetsTiming(t), nil
			case n.Lit == "violated":
				return ViolatesTiming(t), nil
			}
			return nil, &SyntaxError{Query: q, Off: n.Off, Msg: "timing must be met or violated"}
		}
		get, ok := textKeys[n.Key]
		if !ok {
			if _, ok := numericKeys[n.Key]; ok {
				return nil, &SyntaxError{Query: q, Off: n.Off, Msg: n.Key + " supports only comparisons"}
			}
			return nil, &SyntaxError{Query: q, Off: n.Off, Msg: "unknown key " + strconv.Quote(n.Key)}
		}
		return func(r *synthfmt.Record) bool { return n.MatchString(get(r)) }, nil

	case *query.Compare:
		get, ok := numericKeys[n.Key]
		if !ok {
			return nil, &SyntaxError{Query: q, Off: n.Off, Msg: n.Key + " is not numeric"}
		}
		return func(r *synthfmt.Record) bool { return n.Test(get(r)) }, nil
	}
	panic(fmt.Sprintf("unknown query node %T", n))
}
