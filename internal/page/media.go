package page

import (
	"html/template"
	"strings"
)

// Sandbox permissions applied to every embedded frame.
const frameSandbox = "allow-scripts allow-same-origin allow-popups allow-forms allow-presentation"

// FrameOption adjusts an embedded frame.
type FrameOption func(*frame)

type frame struct {
	Src     string
	Title   string
	Height  int
	Sandbox string
	Allow   string
}

// WithAllow sets the iframe permission policy (e.g. "autoplay; fullscreen").
func WithAllow(policy string) FrameOption {
	return func(f *frame) { f.Allow = policy }
}

// WithoutSandbox embeds the frame without the sandbox attribute.
func WithoutSandbox() FrameOption {
	return func(f *frame) { f.Sandbox = "" }
}

// Iframe embeds src at the given height; width always fills the container.
func (p *Page) Iframe(src, title string, height int, opts ...FrameOption) {
	f := &frame{Src: src, Title: title, Height: height, Sandbox: frameSandbox}
	for _, opt := range opts {
		opt(f)
	}
	p.add("iframe", f)
}

type image struct {
	Src     string
	Width   int
	Caption string
}

// Image writes one image. A zero width fills the container.
func (p *Page) Image(src string, width int, caption string) {
	p.add("image", image{Src: src, Width: width, Caption: caption})
}

// ImageGrid writes srcs in a grid of cols columns with one caption below.
func (p *Page) ImageGrid(srcs []string, cols, width int, caption string) {
	if cols < 1 {
		cols = 1
	}
	var rows [][]string
	for i := 0; i < len(srcs); i += cols {
		end := min(i+cols, len(srcs))
		rows = append(rows, srcs[i:end])
	}
	p.add("imagegrid", struct {
		Rows    [][]string
		Cols    int
		Width   int
		Caption string
	}{rows, cols, width, caption})
}

// SVGBuilder is a tiny helper for activities that draw charts.
type SVGBuilder struct {
	sb            strings.Builder
	width, height int
}

// NewSVG starts a drawing with the given viewBox size.
func NewSVG(width, height int) *SVGBuilder {
	return &SVGBuilder{width: width, height: height}
}

// Add appends raw SVG elements. Callers must escape any text they embed.
func (b *SVGBuilder) Add(elems ...string) *SVGBuilder {
	for _, e := range elems {
		b.sb.WriteString(e)
	}
	return b
}

// HTML closes the drawing.
func (b *SVGBuilder) HTML() template.HTML {
	var out strings.Builder
	out.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)
	out.WriteString(itoa(b.width))
	out.WriteString(" ")
	out.WriteString(itoa(b.height))
	out.WriteString(`" width="100%" preserveAspectRatio="xMidYMid meet">`)
	out.WriteString(b.sb.String())
	out.WriteString(`</svg>`)
	return template.HTML(out.String())
}

// EscapeText escapes s for use as SVG text content.
func EscapeText(s string) string {
	return template.HTMLEscapeString(s)
}
