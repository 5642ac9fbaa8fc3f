// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A SyntaxError is an error produced by parsing a malformed query.
type SyntaxError struct {
	Query string // The original query string
	Off   int    // Byte offset of the error in Query
	Msg   string // Error message
}

func (e *SyntaxError) Error() string {
	// Point at the offending rune, counting only printable runes.
	col := 0
	for i, r := range e.Query {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			col++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%s^", e.Msg, e.Query, strings.Repeat(" ", col))
}

type kind int

const (
	kEOF    kind = iota
	kWord        // bare word
	kQuoted      // quoted word, unescaped
	kRegexp      // /regexp/
	kAnd         // AND
	kOr          // OR
	kNot         // leading "-"
	kStar        // leading "*"
	kLParen
	kRParen
	kColon
	kLT
	kLE
	kGT
	kGE
)

func (k kind) isCompare() bool {
	return k == kLT || k == kLE || k == kGT || k == kGE
}

type token struct {
	kind kind
	off  int    // Byte offset in the query
	text string // Word contents, or the regexp source
	re   *regexp.Regexp
}

// lex splits q into tokens, ending with a kEOF token.
//
// "-" and "*" are operators only at the start of a word, so values
// such as "rv64-x" and "a*b" are single words. After a comparison
// operator, "-" starts a (negative) number instead.
func lex(q string) ([]token, error) {
	var toks []token
	prev := kEOF
	for i := 0; i < len(q); {
		r, size := utf8.DecodeRuneInString(q[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		emit := func(k kind, n int) {
			toks = append(toks, token{kind: k, off: i, text: q[i : i+n]})
			i += n
		}
		switch {
		case r == '(':
			emit(kLParen, 1)
		case r == ')':
			emit(kRParen, 1)
		case r == ':':
			emit(kColon, 1)
		case strings.HasPrefix(q[i:], "<="):
			emit(kLE, 2)
		case strings.HasPrefix(q[i:], ">="):
			emit(kGE, 2)
		case r == '<':
			emit(kLT, 1)
		case r == '>':
			emit(kGT, 1)
		case r == '-' && !prev.isCompare():
			emit(kNot, 1)
		case r == '*':
			emit(kStar, 1)
		case r == '/':
			tok, n, err := lexRegexp(q, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += n
		case r == '"':
			tok, n, err := lexQuoted(q, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += n
		default:
			n := wordLen(q[i:])
			switch word := q[i : i+n]; word {
			case "AND":
				emit(kAnd, n)
			case "OR":
				emit(kOr, n)
			default:
				emit(kWord, n)
			}
		}
		prev = toks[len(toks)-1].kind
	}
	toks = append(toks, token{kind: kEOF, off: len(q)})
	return toks, nil
}

func isDelim(r rune) bool {
	switch r {
	case '(', ')', ':', '<', '>', '"':
		return true
	}
	return unicode.IsSpace(r)
}

// wordLen returns the length of the bare word at the start of s.
func wordLen(s string) int {
	for i, r := range s {
		if isDelim(r) {
			return i
		}
	}
	return len(s)
}

func lexQuoted(q string, start int) (token, int, error) {
	end := start + 1
	for end < len(q) && (q[end] != '"' || q[end-1] == '\\') {
		end++
	}
	if end == len(q) {
		return token{}, 0, &SyntaxError{q, start, "missing end quote"}
	}
	word, err := strconv.Unquote(q[start : end+1])
	if err != nil {
		return token{}, 0, &SyntaxError{q, start, "bad escape sequence"}
	}
	return token{kind: kQuoted, off: start, text: word}, end + 1 - start, nil
}

// lexRegexp lexes a regexp delimited by "/" starting at q[start].
// A "/" inside a character class or escaped with "\" does not end
// the regexp.
func lexRegexp(q string, start int) (token, int, error) {
	inClass := false
	end := -1
scan:
	for i := start + 1; i < len(q); i++ {
		switch q[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				end = i
				break scan
			}
		}
	}
	if end < 0 {
		return token{}, 0, &SyntaxError{q, start, `missing close "/"`}
	}
	src := q[start+1 : end]
	re, err := regexp.Compile(src)
	if err != nil {
		return token{}, 0, &SyntaxError{q, start, err.Error()}
	}
	if rest := q[end+1:]; rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) && r != ')' {
			return token{}, 0, &SyntaxError{q, end + 1, `regexp must be followed by space or ")"`}
		}
	}
	return token{kind: kRegexp, off: start, text: src, re: re}, end + 1 - start, nil
}

// quoteWord returns a string that lexes as the word s.
func quoteWord(s string) string {
	if s == "" || s == "AND" || s == "OR" {
		return strconv.Quote(s)
	}
	for i, r := range s {
		if isDelim(r) || r == '\\' || !unicode.IsPrint(r) || (i == 0 && (r == '-' || r == '*' || r == '/')) {
			return strconv.Quote(s)
		}
	}
	return s
}
