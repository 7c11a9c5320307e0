// Package chart draws the small SVG charts shared by the built-in
// activities.
package chart

import (
	"fmt"
	"html/template"
	"math"

	"github.com/vk/mathlab/internal/page"
)

// Drawing size of every chart, in viewBox units.
const (
	Width  = 640
	Height = 320
	pad    = 36
)

// Palette colours residues, methods and series.
var Palette = []string{"#2f6fb0", "#e07b39", "#3d9a5b", "#c0392b", "#8e5cb5", "#8c6d31", "#d35f9b", "#7f7f7f"}

// Bar is one bar of a bar chart.
type Bar struct {
	Label     string
	Value     float64
	Highlight bool
}

// Bars draws a bar chart scaled to its largest value. overlay, when non-nil,
// holds one value per bar and is drawn as a line through the bar centres.
func Bars(bars []Bar, overlay []float64) template.HTML {
	svg := page.NewSVG(Width, Height)
	axes(svg)
	if len(bars) == 0 {
		return svg.HTML()
	}

	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	for _, v := range overlay {
		top = math.Max(top, v)
	}
	if top <= 0 {
		top = 1
	}

	plotW := float64(Width - 2*pad)
	plotH := float64(Height - 2*pad)
	slot := plotW / float64(len(bars))
	every := int(math.Ceil(float64(len(bars)) / 20))

	for i, b := range bars {
		h := b.Value / top * plotH
		x := pad + float64(i)*slot
		fill := Palette[0]
		if b.Highlight {
			fill = Palette[1]
		}
		svg.Add(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" opacity="0.85"/>`,
			x+slot*0.1, Height-pad-h, slot*0.8, h, fill))
		if b.Label != "" && i%every == 0 {
			svg.Add(fmt.Sprintf(`<text x="%.2f" y="%d" font-size="11" text-anchor="middle">%s</text>`,
				x+slot/2, Height-pad+14, page.EscapeText(b.Label)))
		}
	}

	if len(overlay) == len(bars) {
		pts := make([][2]float64, len(overlay))
		for i, v := range overlay {
			pts[i] = [2]float64{pad + (float64(i)+0.5)*slot, Height - pad - v/top*plotH}
		}
		svg.Add(Polyline(pts, Palette[3], 2))
	}
	svg.Add(fmt.Sprintf(`<text x="%d" y="%d" font-size="11">%s</text>`, 4, pad-8, page.EscapeText(Format(top))))
	return svg.HTML()
}

// Polyline returns an SVG polyline through pts.
func Polyline(pts [][2]float64, stroke string, width float64) string {
	s := `<polyline fill="none" stroke="` + stroke + `" stroke-width="` + Format(width) + `" points="`
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.2f,%.2f", p[0], p[1])
	}
	return s + `"/>`
}

// Line returns an SVG line.
func Line(x1, y1, x2, y2 float64, stroke string, width float64) string {
	return fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%s"/>`,
		x1, y1, x2, y2, stroke, Format(width))
}

// Format prints a number with at most four decimals.
func Format(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Scale maps [lo, hi] onto [a, b].
type Scale struct {
	Lo, Hi, A, B float64
}

// Map returns the image of v.
func (s Scale) Map(v float64) float64 {
	if s.Hi == s.Lo {
		return s.A
	}
	return s.A + (v-s.Lo)/(s.Hi-s.Lo)*(s.B-s.A)
}

// Plot returns scales for a plot of [x0, x1] × [y0, y1] inside the padded
// drawing area, y growing upwards.
func Plot(x0, x1, y0, y1 float64) (Scale, Scale) {
	return Scale{x0, x1, pad, Width - pad}, Scale{y0, y1, Height - pad, pad}
}

func axes(svg *page.SVGBuilder) {
	svg.Add(Line(pad, Height-pad, Width-pad, Height-pad, "#444", 1))
	svg.Add(Line(pad, pad, pad, Height-pad, "#444", 1))
}
