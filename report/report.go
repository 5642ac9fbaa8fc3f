// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders summary tables as HTML.
package report

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("").Parse(`
{{- range .}}
<table class='synthsum'>
{{- if .Caption}}
<caption>{{.Caption}}</caption>
{{- end}}
<thead>
<tr>{{range .Columns}}<th>{{.}}{{end}}
</thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}{{end}}
{{- end}}
</tbody>
</table>
{{- end}}
`))

type htmlTable struct {
	Caption string
	Columns []string
	Rows    [][]string
}

// WriteHTML writes each table of g to w as an HTML table. Tables in
// a non-root group are captioned with the group path.
func WriteHTML(w io.Writer, g table.Grouping) error {
	var tables []htmlTable
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		ht := htmlTable{Columns: t.Columns()}
		if gid != table.RootGroupID {
			ht.Caption = strings.TrimPrefix(gid.String(), "/")
		}
		ht.Rows = make([][]string, t.Len())
		for i := range ht.Rows {
			ht.Rows[i] = make([]string, len(ht.Columns))
		}
		for j, name := range ht.Columns {
			col := reflect.ValueOf(t.MustColumn(name))
			for i := range ht.Rows {
				ht.Rows[i][j] = formatCell(col.Index(i).Interface())
			}
		}
		tables = append(tables, ht)
	}
	return htmlTemplate.Execute(w, tables)
}

// formatCell formats floats with at most three decimals and no
// trailing zeros.
func formatCell(v interface{}) string {
	switch v := v.(type) {
	case float64:
		s := strconv.FormatFloat(v, 'f', 3, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		return s
	case string:
		return v
	}
	return fmt.Sprint(v)
}
