// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"regexp"
	"strconv"
	"strings"
)

// A Node is a node in a parsed query: a *Match, a *Compare or an *Op.
type Node interface {
	isNode()
	String() string
}

// A Match tests a key against a literal or a regular expression.
type Match struct {
	Key string

	// Regexp, if non-nil, must match the value. Otherwise the
	// value must equal Lit.
	Regexp *regexp.Regexp
	Lit    string

	// Off is the byte offset of Key in the query.
	Off int
}

func (*Match) isNode() {}

func (m *Match) String() string {
	if m.Regexp != nil {
		return quoteWord(m.Key) + ":/" + m.Regexp.String() + "/"
	}
	return quoteWord(m.Key) + ":" + quoteWord(m.Lit)
}

// MatchString reports whether value satisfies m.
func (m *Match) MatchString(value string) bool {
	if m.Regexp != nil {
		return m.Regexp.MatchString(value)
	}
	return value == m.Lit
}

// A Compare tests a numeric key against a constant.
type Compare struct {
	Key   string
	Op    CmpOp
	Value float64
	Off   int
}

func (*Compare) isNode() {}

func (c *Compare) String() string {
	return quoteWord(c.Key) + c.Op.String() + strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// Test reports whether x satisfies c.
func (c *Compare) Test(x float64) bool {
	switch c.Op {
	case Less:
		return x < c.Value
	case LessEq:
		return x <= c.Value
	case Greater:
		return x > c.Value
	case GreaterEq:
		return x >= c.Value
	}
	return false
}

// CmpOp is a numeric comparison operator.
type CmpOp int

const (
	Less CmpOp = 1 + iota
	LessEq
	Greater
	GreaterEq
)

func (op CmpOp) String() string {
	switch op {
	case Less:
		return "<"
	case LessEq:
		return "<="
	case Greater:
		return ">"
	case GreaterEq:
		return ">="
	}
	return "?"
}

// An Op combines child nodes. OpNot has exactly one child. OpAnd and
// OpOr may have any number; an empty OpAnd matches everything and an
// empty OpOr matches nothing.
type Op struct {
	Op    BoolOp
	Exprs []Node
}

func (*Op) isNode() {}

func (o *Op) String() string {
	var sep string
	switch o.Op {
	case OpNot:
		return "-" + o.Exprs[0].String()
	case OpAnd:
		if len(o.Exprs) == 0 {
			return "*"
		}
		sep = " AND "
	case OpOr:
		if len(o.Exprs) == 0 {
			return "-*"
		}
		sep = " OR "
	}
	parts := make([]string, len(o.Exprs))
	for i, e := range o.Exprs {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// BoolOp is a boolean operator.
type BoolOp int

const (
	OpAnd BoolOp = 1 + iota
	OpOr
	OpNot
)
