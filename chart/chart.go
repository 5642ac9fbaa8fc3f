// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders synthesis series as scatter charts.
//
// The charts consume points produced by package synthproc; all
// selection, outlier exclusion and normalization happen there. The
// output format is chosen by the file extension (.png or .svg).
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/synthdc/ppa/synthmath"
	"github.com/synthdc/ppa/synthproc"
	"github.com/synthdc/ppa/techspec"
)

const (
	width  = 8 * vg.Inch
	height = 6 * vg.Inch

	pointRad = 3
)

var (
	achievedColor = color.RGBA{128, 128, 128, 255}
	violatedColor = color.RGBA{0, 0, 255, 255}
)

// FreqSweepName, FeaturesName, ConfigsName and NormAreaDelayName
// return the conventional file names of each chart.
func FreqSweepName(tech, label string) string {
	return fmt.Sprintf("freqSweep_%s_%s.png", tech, label)
}

func FeaturesName(tech, label string, freqMHz int) string {
	return fmt.Sprintf("features_%s_%s_%dMHz.png", tech, label, freqMHz)
}

func ConfigsName(tech, mod string) string {
	return fmt.Sprintf("configs_%s_%s.png", tech, mod)
}

const NormAreaDelayName = "normAreaDelay.png"

// FreqSweep writes a frequency sweep to path: achieved cycle time
// above and area below, both against target cycle time, with runs
// that violate timing in a separate color.
func FreqSweep(path, title string, sw synthproc.Sweep) error {
	delay := plot.New()
	delay.Title.Text = title
	delay.Y.Label.Text = "Cycle Time Achieved (ns)"

	area := plot.New()
	area.X.Label.Text = "Target Cycle Time (ns)"
	area.Y.Label.Text = "Area (sq microns)"
	area.Y.Tick.Marker = commaTicks{}

	for _, part := range []struct {
		pts   []synthproc.Point
		label string
		color color.Color
	}{
		{sw.Met, "timing achieved", achievedColor},
		{sw.Violated, "slack violated", violatedColor},
	} {
		if len(part.pts) == 0 {
			continue
		}
		style := draw.GlyphStyle{Color: part.color, Radius: vg.Points(pointRad), Shape: draw.CircleGlyph{}}
		sd, err := scatter(part.pts, func(pt synthproc.Point) float64 { return pt.Delay }, style)
		if err != nil {
			return err
		}
		sa, err := scatter(part.pts, func(pt synthproc.Point) float64 { return pt.Area }, style)
		if err != nil {
			return err
		}
		delay.Add(sd)
		delay.Legend.Add(part.label, sd)
		area.Add(sa)
	}
	delay.Legend.Top = true
	areaAxis(area, sw.Met, sw.Violated)

	// Stack the two plots with aligned X axes.
	c, err := draw.NewFormattedCanvas(width, height, format(path))
	if err != nil {
		return err
	}
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadX: vg.Millimeter, PadY: vg.Millimeter, PadTop: vg.Points(4), PadBottom: vg.Points(4), PadLeft: vg.Points(4), PadRight: vg.Points(4)}
	plots := [][]*plot.Plot{{delay}, {area}}
	canvases := plot.Align(plots, tiles, draw.New(c))
	delay.Draw(canvases[0][0])
	area.Draw(canvases[1][0])
	return writeCanvas(path, c)
}

// AreaDelay writes a labeled scatter of area against achieved cycle
// time to path, in the color and marker of spec.
func AreaDelay(path, title string, pts []synthproc.Point, spec *techspec.Spec) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Cycle time (ns)"
	p.Y.Label.Text = "Area (sq microns)"
	p.Y.Tick.Marker = commaTicks{}
	if err := addSeries(p, pts, spec, 0); err != nil {
		return err
	}
	areaAxis(p, pts)
	return save(p, path)
}

// A Series is one technology's points on a normalized chart.
type Series struct {
	Spec   *techspec.Spec
	Points []synthproc.Point // Already normalized
}

// NormAreaDelay writes normalized area against normalized cycle time
// for several technologies to path, with one legend entry per
// technology.
func NormAreaDelay(path string, series []Series) error {
	p := plot.New()
	p.Title.Text = "Normalized Area & Cycle Time by Configuration"
	p.X.Label.Text = "Cycle Time (FO4)"
	p.Y.Label.Text = "Area (add32)"
	p.Legend.Top = true
	p.Legend.Left = true
	all := make([][]synthproc.Point, len(series))
	for i, s := range series {
		if err := addSeries(p, s.Points, s.Spec, i); err != nil {
			return err
		}
		all[i] = s.Points
	}
	areaAxis(p, all...)
	return save(p, path)
}

// addSeries adds the points of one technology, with labels, and a
// legend entry named after the technology.
func addSeries(p *plot.Plot, pts []synthproc.Point, spec *techspec.Spec, i int) error {
	if len(pts) == 0 {
		return nil
	}
	style := draw.GlyphStyle{Color: techColor(spec.Color, i), Radius: vg.Points(pointRad), Shape: glyph(spec.Marker)}
	s, err := scatter(pts, func(pt synthproc.Point) float64 { return pt.Area }, style)
	if err != nil {
		return err
	}
	p.Add(s)
	p.Legend.Add(spec.Name, s)

	xyl := plotter.XYLabels{XYs: make(plotter.XYs, len(pts)), Labels: make([]string, len(pts))}
	for j, pt := range pts {
		xyl.XYs[j] = plotter.XY{X: pt.Delay, Y: pt.Area}
		xyl.Labels[j] = pt.Label
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return err
	}
	p.Add(labels)
	return nil
}

// scatter makes a scatter of pts with X against y(pt).
func scatter(pts []synthproc.Point, y func(synthproc.Point) float64, style draw.GlyphStyle) (*plotter.Scatter, error) {
	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i] = plotter.XY{X: p.X, Y: y(p)}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = style
	return s, nil
}

// areaAxis starts the Y axis at zero and leaves headroom above the
// largest area in pts.
func areaAxis(p *plot.Plot, pts ...[]synthproc.Point) {
	var areas []float64
	for _, ps := range pts {
		for _, pt := range ps {
			areas = append(areas, pt.Area)
		}
	}
	_, max := synthmath.Bounds(areas)
	if !(max > 0) {
		return
	}
	p.Y.Min = 0
	p.Y.Max = 1.1 * max
}

var namedColors = map[string]color.Color{
	"black":  color.Black,
	"blue":   violatedColor,
	"gray":   achievedColor,
	"green":  color.RGBA{0, 128, 0, 255},
	"orange": color.RGBA{255, 165, 0, 255},
	"purple": color.RGBA{128, 0, 128, 255},
	"red":    color.RGBA{255, 0, 0, 255},
}

// techColor returns the named color, or the i'th color of a
// qualitative palette if name is unknown.
func techColor(name string, i int) color.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 9)
	if err != nil {
		return color.Black
	}
	colors := pal.Colors()
	return colors[i%len(colors)]
}

func glyph(marker string) draw.GlyphDrawer {
	switch marker {
	case "s":
		return draw.BoxGlyph{}
	case "^":
		return draw.TriangleGlyph{}
	case "+":
		return draw.PlusGlyph{}
	case "x":
		return draw.CrossGlyph{}
	}
	return draw.CircleGlyph{}
}

// commaTicks labels major ticks with thousands separators.
type commaTicks struct{}

var printer = message.NewPrinter(language.English)

func (commaTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = printer.Sprintf("%.0f", ticks[i].Value)
		}
	}
	return ticks
}

func format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func save(p *plot.Plot, path string) error {
	c, err := draw.NewFormattedCanvas(width, height, format(path))
	if err != nil {
		return err
	}
	p.Draw(draw.New(c))
	return writeCanvas(path, c)
}

func writeCanvas(path string, c vg.CanvasWriterTo) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = c.WriteTo(f)
	return err
}
