package page

import (
	"math"
	"strconv"
)

type rangeInput struct {
	Key, Label            string
	Min, Max, Step, Value string
}

// Slider renders a range input and returns its current value, clamped to
// [lo, hi]. A missing or unparsable submission yields def.
func (p *Page) Slider(key, label string, lo, hi, step, def float64) float64 {
	v := def
	if raw := p.values.Get(p.name(key)); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			v = f
		}
	}
	v = math.Max(lo, math.Min(hi, v))
	p.inputs++
	p.add("slider", rangeInput{
		Key: p.name(key), Label: label,
		Min: ftoa(lo), Max: ftoa(hi), Step: ftoa(step), Value: ftoa(v),
	})
	return v
}

// IntSlider is Slider for integers.
func (p *Page) IntSlider(key, label string, lo, hi, def int) int {
	return int(math.Round(p.Slider(key, label, float64(lo), float64(hi), 1, float64(def))))
}

// Number renders a numeric input and returns its value clamped to [lo, hi].
func (p *Page) Number(key, label string, lo, hi, def int) int {
	v := def
	if raw := p.values.Get(p.name(key)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			v = n
		}
	}
	v = max(lo, min(hi, v))
	p.inputs++
	p.add("number", rangeInput{
		Key: p.name(key), Label: label,
		Min: itoa(lo), Max: itoa(hi), Step: "1", Value: itoa(v),
	})
	return v
}

// Option is one choice of a Select.
type Option struct {
	Value, Label string
}

type selectInput struct {
	Key, Label, Value string
	Options           []Option
}

// Select renders a drop-down and returns the chosen value. Submissions that
// do not match an option yield def.
func (p *Page) Select(key, label string, options []Option, def string) string {
	v := def
	if raw := p.values.Get(p.name(key)); raw != "" {
		for _, o := range options {
			if o.Value == raw {
				v = raw
				break
			}
		}
	}
	p.inputs++
	p.add("select", selectInput{Key: p.name(key), Label: label, Value: v, Options: options})
	return v
}

// Checkbox renders a checkbox. The hidden companion field lets an unchecked
// box be told apart from a first render.
func (p *Page) Checkbox(key, label string, def bool) bool {
	v := def
	if _, submitted := p.values[p.name(key)+".present"]; submitted {
		v = p.values.Get(p.name(key)) == "on"
	}
	p.inputs++
	p.add("checkbox", struct {
		Key, Label string
		Checked    bool
	}{p.name(key), label, v})
	return v
}

// Button renders a submit button and reports whether it triggered this render.
func (p *Page) Button(key, label string) bool {
	p.inputs++
	p.add("button", struct{ Key, Label string }{p.name(key), label})
	return p.values.Get(p.name(key)) == "1"
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func itoa(n int) string { return strconv.Itoa(n) }
