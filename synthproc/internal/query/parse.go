// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query parses record filter expressions.
//
// The grammar is
//
//	expr    = and { "OR" and }
//	and     = unary { ["AND"] unary }
//	unary   = "-" unary | "(" expr ")" | "*" | term
//	term    = key ":" value
//	        | key ":" "(" value { "OR" value } ")"
//	        | key ( "<" | "<=" | ">" | ">=" ) number
//	value   = word | quoted | "/" regexp "/"
package query

import (
	"strconv"
)

// Parse parses q into a Node tree.
func Parse(q string) (Node, error) {
	toks, err := lex(q)
	if err != nil {
		return nil, err
	}
	p := &parser{q: q, toks: toks}
	n := p.expr()
	if p.err == nil && p.peek().kind != kEOF {
		p.fail(p.peek().off, "unexpected "+strconv.Quote(p.peek().text))
	}
	if p.err != nil {
		return nil, p.err
	}
	return n, nil
}

type parser struct {
	q    string
	toks []token
	pos  int
	err  *SyntaxError
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != kEOF {
		p.pos++
	}
	return t
}

// fail records the first error and moves to the end of the input.
func (p *parser) fail(off int, msg string) {
	if p.err == nil {
		p.err = &SyntaxError{p.q, off, msg}
	}
	p.pos = len(p.toks) - 1
}

func (p *parser) expr() Node {
	terms := []Node{p.and()}
	for p.err == nil && p.peek().kind == kOr {
		p.next()
		terms = append(terms, p.and())
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &Op{OpOr, terms}
}

func (p *parser) and() Node {
	terms := []Node{p.unary()}
	for p.err == nil {
		switch t := p.peek(); t.kind {
		case kAnd:
			p.next()
			terms = append(terms, p.unary())
		case kNot, kStar, kLParen, kWord, kQuoted:
			terms = append(terms, p.unary())
		case kEOF, kOr, kRParen:
			if len(terms) == 1 {
				return terms[0]
			}
			return &Op{OpAnd, terms}
		default:
			p.fail(t.off, "unexpected "+strconv.Quote(t.text))
		}
	}
	return nil
}

func (p *parser) unary() Node {
	t := p.next()
	switch t.kind {
	case kNot:
		return &Op{OpNot, []Node{p.unary()}}
	case kStar:
		return &Op{OpAnd, nil}
	case kLParen:
		n := p.expr()
		if p.err != nil {
			return nil
		}
		if t := p.next(); t.kind != kRParen {
			p.fail(t.off, `missing ")"`)
		}
		return n
	case kWord, kQuoted:
		return p.term(t)
	}
	p.fail(t.off, "expected key:value or subexpression")
	return nil
}

func (p *parser) term(key token) Node {
	op := p.next()
	switch op.kind {
	case kColon:
	case kLT, kLE, kGT, kGE:
		num := p.next()
		if num.kind != kWord {
			p.fail(num.off, "expected number")
			return nil
		}
		v, err := strconv.ParseFloat(num.text, 64)
		if err != nil {
			p.fail(num.off, "expected number, found "+strconv.Quote(num.text))
			return nil
		}
		return &Compare{key.text, cmpOps[op.kind], v, key.off}
	default:
		p.fail(key.off, "expected key:value")
		return nil
	}

	val := p.next()
	switch val.kind {
	case kWord, kQuoted, kRegexp:
		return match(key, val)
	case kLParen:
	default:
		p.fail(key.off, "expected key:value")
		return nil
	}

	// Value list.
	var terms []Node
	for {
		val := p.next()
		switch val.kind {
		case kWord, kQuoted, kRegexp:
			terms = append(terms, match(key, val))
		default:
			p.fail(val.off, "expected value")
			return nil
		}
		switch sep := p.next(); sep.kind {
		case kRParen:
			return &Op{OpOr, terms}
		case kOr:
		default:
			p.fail(sep.off, "value list must be separated by OR")
			return nil
		}
	}
}

var cmpOps = map[kind]CmpOp{kLT: Less, kLE: LessEq, kGT: Greater, kGE: GreaterEq}

func match(key, val token) *Match {
	if val.kind == kRegexp {
		return &Match{Key: key.text, Regexp: val.re, Off: key.off}
	}
	return &Match{Key: key.text, Lit: val.text, Off: key.off}
}
