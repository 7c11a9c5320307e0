// Package page is the host-side widget layer: the set of primitives that
// activities and the item renderer use to put content on a view.
//
// A Page is built for exactly one render of one route. Input widgets read
// their current value from the submitted form and emit a control that
// resubmits the form when changed, which is what triggers the next render.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/vk/mathlab/internal/session"
)

// Page accumulates the HTML fragments of one view.
type Page struct {
	*sheet
	route  string
	ns     string // input name prefix, "" at the top level
	values url.Values
	state  *session.Scoped
}

// sheet is the output shared by a page and all of its scopes.
type sheet struct {
	title        string
	parts        []template.HTML
	inputs       int
	scrollSuffix string
}

// New creates a page for route. values are the submitted widget values and
// state is the route-scoped keyed state; both may be nil.
func New(route string, values url.Values, state *session.Scoped) *Page {
	if values == nil {
		values = url.Values{}
	}
	return &Page{sheet: &sheet{}, route: route, values: values, state: state}
}

// Scope returns a view of p whose input widgets and keyed state live under
// ns, so two activities on one page can use the same widget keys. Content
// written through the scope lands on p.
func (p *Page) Scope(ns string) *Page {
	c := *p
	c.ns = p.name(ns)
	c.state = p.state.Scope(ns)
	return &c
}

// Namespace returns the input name prefix of this scope.
func (p *Page) Namespace() string { return p.ns }

// name is the form field name of widget key within this scope.
func (p *Page) name(key string) string {
	if p.ns == "" {
		return key
	}
	return p.ns + "." + key
}

// Route returns the route this page renders.
func (p *Page) Route() string { return p.route }

// State returns the keyed state scoped to this page's route.
func (p *Page) State() *session.Scoped { return p.state }

// DocumentTitle returns the title set by the first Title call.
func (p *Page) DocumentTitle() string { return p.title }

// SetScrollSuffix keys the saved scroll offset of this view by suffix as
// well as by route, for views whose layout changes with their widgets.
func (p *Page) SetScrollSuffix(suffix string) { p.scrollSuffix = suffix }

// ScrollSuffix returns the suffix set by SetScrollSuffix.
func (p *Page) ScrollSuffix() string { return p.scrollSuffix }

// HasInputs reports whether any input widget was rendered.
func (p *Page) HasInputs() bool { return p.inputs > 0 }

// Body returns the accumulated content.
func (p *Page) Body() template.HTML {
	var sb strings.Builder
	for _, part := range p.parts {
		sb.WriteString(string(part))
	}
	return template.HTML(sb.String())
}

// Len is the number of fragments written so far.
func (p *Page) Len() int { return len(p.parts) }

func (p *Page) add(name string, data any) {
	var buf bytes.Buffer
	if err := widgets.ExecuteTemplate(&buf, name, data); err != nil {
		// Widget templates are static; a failure here is a programming error.
		panic(fmt.Sprintf("page: widget %q: %v", name, err))
	}
	p.parts = append(p.parts, template.HTML(buf.String()))
}

// Title writes the view's main heading.
func (p *Page) Title(text string) {
	if p.title == "" {
		p.title = text
	}
	p.add("title", text)
}

// Header writes a section heading.
func (p *Page) Header(text string) { p.add("header", text) }

// Subheader writes a minor heading.
func (p *Page) Subheader(text string) { p.add("subheader", text) }

// Text writes a paragraph. Blank lines split paragraphs.
func (p *Page) Text(text string) {
	for _, para := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			p.add("text", para)
		}
	}
}

// Textf is Text with formatting.
func (p *Page) Textf(format string, args ...any) { p.Text(fmt.Sprintf(format, args...)) }

// Caption writes small muted text.
func (p *Page) Caption(text string) { p.add("caption", text) }

// HTML writes trusted markup verbatim.
func (p *Page) HTML(markup template.HTML) { p.parts = append(p.parts, markup) }

// SVG writes a trusted inline SVG drawing inside a figure.
func (p *Page) SVG(svg template.HTML) { p.add("svg", svg) }

// Anchor writes an invisible scroll target with the given id.
func (p *Page) Anchor(id string) { p.add("anchor", id) }

// Metric writes a labelled headline number.
func (p *Page) Metric(label, value string) {
	p.add("metric", struct{ Label, Value string }{label, value})
}

// Table writes a simple table.
func (p *Page) Table(headers []string, rows [][]string) {
	p.add("table", struct {
		Headers []string
		Rows    [][]string
	}{headers, rows})
}

// LinkButton writes a secondary action linking to href.
func (p *Page) LinkButton(label, href string) {
	p.add("linkbutton", struct{ Label, Href string }{label, href})
}

// Diagnostic writes a bordered diagnostic panel.
func (p *Page) Diagnostic(title string, details ...string) {
	p.add("diagnostic", struct {
		Title   string
		Details []string
	}{title, details})
}

// Link writes an in-app link to another route.
func (p *Page) Link(label, route string) {
	p.add("link", struct{ Label, Href string }{label, Href(route)})
}

// Href returns the URL that renders route.
func Href(route string) string {
	return "/?" + url.Values{"route": {route}}.Encode()
}
