package page

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlider(t *testing.T) {
	testCases := []struct {
		name     string
		values   url.Values
		expected float64
	}{
		{name: "default on first render", values: nil, expected: 10},
		{name: "submitted value", values: url.Values{"n": {"42"}}, expected: 42},
		{name: "clamped high", values: url.Values{"n": {"5000"}}, expected: 100},
		{name: "clamped low", values: url.Values{"n": {"-3"}}, expected: 1},
		{name: "garbage falls back", values: url.Values{"n": {"abc"}}, expected: 10},
		{name: "NaN falls back", values: url.Values{"n": {"NaN"}}, expected: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := New("probability/x", tc.values, nil)
			got := p.Slider("n", "trials", 1, 100, 1, 10)
			assert.Equal(t, tc.expected, got)
			assert.True(t, p.HasInputs())
			assert.Contains(t, string(p.Body()), `name="n"`)
		})
	}
}

func TestSelect_RejectsUnknownOption(t *testing.T) {
	opts := []Option{{"a", "A"}, {"b", "B"}}

	p := New("r", url.Values{"m": {"zzz"}}, nil)
	assert.Equal(t, "a", p.Select("m", "method", opts, "a"))

	p = New("r", url.Values{"m": {"b"}}, nil)
	assert.Equal(t, "b", p.Select("m", "method", opts, "a"))
	assert.Contains(t, string(p.Body()), `<option value="b" selected>`)
}

func TestCheckbox(t *testing.T) {
	p := New("r", nil, nil)
	assert.True(t, p.Checkbox("c", "show", true), "first render uses the default")

	p = New("r", url.Values{"c.present": {"1"}}, nil)
	assert.False(t, p.Checkbox("c", "show", true), "submitted without the box means unchecked")

	p = New("r", url.Values{"c.present": {"1"}, "c": {"on"}}, nil)
	assert.True(t, p.Checkbox("c", "show", false))
}

func TestButton(t *testing.T) {
	p := New("r", url.Values{"run": {"1"}}, nil)
	assert.True(t, p.Button("run", "Run"))
	assert.False(t, p.Button("reset", "Reset"))
}

func TestIframe_EscapesAndSandboxes(t *testing.T) {
	p := New("r", nil, nil)
	p.Iframe("https://example.com/embed?a=1&b=2", `x"y`, 600)

	body := string(p.Body())
	assert.Contains(t, body, `src="https://example.com/embed?a=1&amp;b=2"`)
	assert.Contains(t, body, `height="600"`)
	assert.Contains(t, body, `sandbox="`)
	assert.NotContains(t, body, `x"y`)
}

func TestIframe_RejectsScriptURL(t *testing.T) {
	p := New("r", nil, nil)
	p.Iframe("javascript:alert(1)", "bad", 400)
	assert.NotContains(t, string(p.Body()), "javascript:")
}

func TestImageGrid(t *testing.T) {
	p := New("r", nil, nil)
	p.ImageGrid([]string{"https://a/1.png", "https://a/2.png", "https://a/3.png"}, 2, 0, "three")

	body := string(p.Body())
	assert.Contains(t, body, "repeat(2,1fr)")
	assert.Equal(t, 3, strings.Count(body, "<img "))
	assert.Contains(t, body, "<figcaption>three</figcaption>")
}

func TestText_SplitsParagraphs(t *testing.T) {
	p := New("r", nil, nil)
	p.Text("first\n\nsecond\n\n")
	require.Equal(t, 2, p.Len())
}

func TestTitle_SetsDocumentTitle(t *testing.T) {
	p := New("r", nil, nil)
	p.Title("몬티 홀")
	p.Title("ignored")
	assert.Equal(t, "몬티 홀", p.DocumentTitle())
}

func TestHref(t *testing.T) {
	assert.Equal(t, "/?route=probability%231-2-1", Href("probability#1-2-1"))
}

func TestScope_NamespacesInputs(t *testing.T) {
	values := url.Values{"n": {"7"}, "item-2.n": {"20"}, "item-3.n": {"30"}}
	p := New("probability#2-1", values, nil)

	assert.Equal(t, 7, p.IntSlider("n", "n", 1, 100, 1))
	assert.Equal(t, 20, p.Scope("item-2").IntSlider("n", "n", 1, 100, 1))
	assert.Equal(t, 30, p.Scope("item-3").IntSlider("n", "n", 1, 100, 1))
	assert.Equal(t, 5, p.Scope("item-4").IntSlider("n", "n", 1, 100, 5), "an unsubmitted scope keeps its default")

	body := string(p.Body())
	assert.Contains(t, body, `name="item-2.n"`)
	assert.Contains(t, body, `name="item-3.n"`)
	assert.Equal(t, 4, p.Len(), "scopes write onto the parent page")
	assert.Equal(t, "item-2.sub", p.Scope("item-2").Scope("sub").Namespace())
}

func TestScope_Checkbox(t *testing.T) {
	p := New("r", url.Values{"item-1.show.present": {"1"}}, nil)
	assert.False(t, p.Scope("item-1").Checkbox("show", "show", true), "unchecked box inside a scope")
	assert.True(t, p.Checkbox("show", "show", true), "top level is not submitted")
}
