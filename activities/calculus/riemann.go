package calculus

import (
	"context"
	"fmt"
	"html/template"
	"math"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// Sampling rules of a Riemann sum.
const (
	Left      = "left"
	Right     = "right"
	Mid       = "mid"
	Trapezoid = "trapezoid"
)

// Func is an integrand with a known antiderivative.
type Func struct {
	Label  string
	F      func(x float64) float64
	Anti   func(x float64) float64
	Domain float64 // smallest x the function is defined at
}

// Funcs are the selectable integrands by key.
var Funcs = map[string]Func{
	"square": {
		Label: "f(x) = x²", Domain: math.Inf(-1),
		F:    func(x float64) float64 { return x * x },
		Anti: func(x float64) float64 { return x * x * x / 3 },
	},
	"sin": {
		Label: "f(x) = sin x", Domain: math.Inf(-1),
		F:    math.Sin,
		Anti: func(x float64) float64 { return -math.Cos(x) },
	},
	"exp": {
		Label: "f(x) = eˣ", Domain: math.Inf(-1),
		F:    math.Exp,
		Anti: math.Exp,
	},
	"sqrt": {
		Label: "f(x) = √x", Domain: 0,
		F:    math.Sqrt,
		Anti: func(x float64) float64 { return 2 * x * math.Sqrt(x) / 3 },
	},
}

// Sum returns the Riemann sum of f over [a, b] with n equal subintervals.
func Sum(f func(float64) float64, a, b float64, n int, rule string) float64 {
	h := (b - a) / float64(n)
	s := 0.0
	for i := range n {
		x0 := a + float64(i)*h
		x1 := x0 + h
		switch rule {
		case Right:
			s += f(x1)
		case Mid:
			s += f(x0 + h/2)
		case Trapezoid:
			s += (f(x0) + f(x1)) / 2
		default:
			s += f(x0)
		}
	}
	return s * h
}

// Exact returns the definite integral of fn over [a, b].
func (fn Func) Exact(a, b float64) float64 { return fn.Anti(b) - fn.Anti(a) }

// RiemannSum approximates a definite integral by rectangles.
func RiemannSum(ctx context.Context, p *page.Page) error {
	p.Text("구간 [a, b]를 n등분하고 각 소구간에서 높이를 정해 넓이의 합으로 정적분을 근사합니다. n을 키우면 근삿값이 정적분의 값에 가까워집니다.")
	key := p.Select("f", "함수", []page.Option{
		{Value: "square", Label: Funcs["square"].Label},
		{Value: "sin", Label: Funcs["sin"].Label},
		{Value: "exp", Label: Funcs["exp"].Label},
		{Value: "sqrt", Label: Funcs["sqrt"].Label},
	}, "square")
	a := p.Slider("a", "a", -3, 3, 0.5, 0)
	b := p.Slider("b", "b", -3, 3, 0.5, 1)
	n := p.IntSlider("n", "분할 수 n", 1, 100, 8)
	rule := p.Select("rule", "높이를 정하는 방법", []page.Option{
		{Value: Left, Label: "왼쪽 끝점"},
		{Value: Right, Label: "오른쪽 끝점"},
		{Value: Mid, Label: "중점"},
		{Value: Trapezoid, Label: "사다리꼴"},
	}, Left)

	fn := Funcs[key]
	if b <= a {
		p.Diagnostic("구간이 올바르지 않습니다.", "b는 a보다 커야 합니다.")
		return nil
	}
	if a < fn.Domain {
		p.Diagnostic("함수가 정의되지 않는 구간입니다.", fmt.Sprintf("%s는 x ≥ %s에서만 정의됩니다.", fn.Label, chart.Format(fn.Domain)))
		return nil
	}

	approx := Sum(fn.F, a, b, n, rule)
	exact := fn.Exact(a, b)
	p.SVG(draw(fn, a, b, n, rule))
	p.Metric("근삿값", chart.Format(approx))
	p.Metric("정적분의 값", chart.Format(exact))
	p.Metric("오차", chart.Format(math.Abs(approx-exact)))
	return nil
}

func draw(fn Func, a, b float64, n int, rule string) template.HTML {
	const samples = 200
	pts := make([][2]float64, samples+1)
	lo, hi := 0.0, 0.0
	for i := range pts {
		x := a + (b-a)*float64(i)/samples
		y := fn.F(x)
		pts[i] = [2]float64{x, y}
		lo, hi = math.Min(lo, y), math.Max(hi, y)
	}
	sx, sy := chart.Plot(a, b, lo, hi)

	svg := page.NewSVG(chart.Width, chart.Height)
	h := (b - a) / float64(n)
	for i := range n {
		x0 := a + float64(i)*h
		x1 := x0 + h
		var y0, y1 float64
		switch rule {
		case Right:
			y0, y1 = fn.F(x1), fn.F(x1)
		case Mid:
			y0 = fn.F(x0 + h/2)
			y1 = y0
		case Trapezoid:
			y0, y1 = fn.F(x0), fn.F(x1)
		default:
			y0, y1 = fn.F(x0), fn.F(x0)
		}
		svg.Add(fmt.Sprintf(`<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s" fill-opacity="0.35" stroke="%s"/>`,
			sx.Map(x0), sy.Map(0), sx.Map(x0), sy.Map(y0), sx.Map(x1), sy.Map(y1), sx.Map(x1), sy.Map(0),
			chart.Palette[0], chart.Palette[0]))
	}

	screen := make([][2]float64, len(pts))
	for i, pt := range pts {
		screen[i] = [2]float64{sx.Map(pt[0]), sy.Map(pt[1])}
	}
	svg.Add(chart.Polyline(screen, chart.Palette[3], 2))
	svg.Add(chart.Line(sx.Map(a), sy.Map(0), sx.Map(b), sy.Map(0), "#444", 1))
	return svg.HTML()
}
