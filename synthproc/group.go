// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthproc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/synthdc/ppa/synthfmt"
)

// A Field is an identity field of a Record that Records can be
// grouped by.
type Field int

const (
	FieldTech Field = iota
	FieldWidth
	FieldConfig
	FieldMod
	FieldFreq
)

var fieldNames = []string{"tech", "width", "config", "mod", "freq"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// Value returns the value of field f of r, as text.
func (f Field) Value(r *synthfmt.Record) string {
	switch f {
	case FieldTech:
		return r.Tech
	case FieldWidth:
		return r.Width
	case FieldConfig:
		return r.Config
	case FieldMod:
		return r.Mod
	case FieldFreq:
		return strconv.Itoa(r.FreqMHz)
	}
	panic("bad field " + f.String())
}

// ParseFields parses a comma-separated list of field names, such as
// "tech,width,config".
func ParseFields(list string) ([]Field, error) {
	var fields []Field
	if strings.TrimSpace(list) == "" {
		return fields, nil
	}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		found := false
		for i, n := range fieldNames {
			if n == name {
				fields = append(fields, Field(i))
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown field %q (want one of %s)", name, strings.Join(fieldNames, ", "))
		}
	}
	return fields, nil
}

// A Group is a set of Records that agree on some Fields.
type Group struct {
	// Values holds the value of each grouping Field, in order.
	Values []string
	// Records holds the group's Records in input order.
	Records []*synthfmt.Record
}

// Label returns the group's field values joined by spaces.
func (g *Group) Label() string {
	return strings.Join(g.Values, " ")
}

// GroupBy splits recs into groups of Records with equal values of the
// given fields. Groups are ordered by first appearance in recs. With
// no fields, all Records form a single group.
func GroupBy(recs []*synthfmt.Record, by ...Field) []*Group {
	groups := []*Group{}
	index := make(map[string]*Group)
	for _, r := range recs {
		vals := make([]string, len(by))
		for i, f := range by {
			vals[i] = f.Value(r)
		}
		key := strings.Join(vals, "\x00")
		g := index[key]
		if g == nil {
			g = &Group{Values: vals}
			index[key] = g
			groups = append(groups, g)
		}
		g.Records = append(g.Records, r)
	}
	return groups
}
