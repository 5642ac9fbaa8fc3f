// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthproc

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/synthdc/ppa/synthfmt"
)

// row is the table form of a Record. Column names are the field
// names.
type row struct {
	Tech, Width, Config, Mod string
	Freq                     int
	Delay, Area              float64
}

var fieldCols = []string{"Tech", "Width", "Config", "Mod", "Freq"}

// Summary column names, after the grouping fields.
const (
	ColRuns      = "runs"
	ColMeanDelay = "mean delay"
	ColMinDelay  = "min delay"
	ColMaxDelay  = "max delay"
	ColMeanArea  = "mean area"
	ColMinArea   = "min area"
	ColMaxArea   = "max area"
)

// aggCols maps summary columns to the columns ggstat produces.
var aggCols = []struct{ name, src string }{
	{ColRuns, "count"},
	{ColMeanDelay, "mean Delay"},
	{ColMinDelay, "min Delay"},
	{ColMaxDelay, "max Delay"},
	{ColMeanArea, "mean Area"},
	{ColMinArea, "min Area"},
	{ColMaxArea, "max Area"},
}

// Summarize returns a table with one row per group of recs that agree
// on the by fields. Groups are ordered by first appearance of the
// first field's values, then of the second's within those, and so
// on. Each row holds the group's field values (columns named after
// the fields), the number of runs and the mean, minimum and maximum
// delay and area.
func Summarize(recs []*synthfmt.Record, by ...Field) table.Grouping {
	if len(recs) == 0 {
		return emptySummary(by)
	}

	rows := make([]row, len(recs))
	for i, r := range recs {
		rows[i] = row{r.Tech, r.Width, r.Config, r.Mod, r.FreqMHz, r.DelayNs, r.AreaUm2}
	}
	xs := make([]string, len(by))
	for i, f := range by {
		xs[i] = fieldCols[f]
	}
	g := ggstat.Agg(xs...)(
		ggstat.AggCount(""),
		ggstat.AggMean("Delay", "Area"),
		ggstat.AggMin("Delay", "Area"),
		ggstat.AggMax("Delay", "Area"),
	).F(table.TableFromStructs(rows))

	// Keep only the grouping and aggregate columns, under their
	// summary names.
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		var b table.Builder
		for i, f := range by {
			b.Add(f.String(), t.MustColumn(xs[i]))
		}
		for _, c := range aggCols {
			b.Add(c.name, t.MustColumn(c.src))
		}
		return b.Done()
	})
}

func emptySummary(by []Field) table.Grouping {
	var b table.Builder
	for _, f := range by {
		if f == FieldFreq {
			b.Add(f.String(), []int{})
		} else {
			b.Add(f.String(), []string{})
		}
	}
	b.Add(ColRuns, []int{})
	for _, c := range aggCols[1:] {
		b.Add(c.name, []float64{})
	}
	return b.Done()
}
