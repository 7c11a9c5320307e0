package probability

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// Chord selection methods.
const (
	MethodEndpoints = "endpoints"
	MethodRadius    = "radius"
	MethodMidpoint  = "midpoint"
)

// BertrandTheory is the probability that a chord is longer than the side
// of the inscribed equilateral triangle, per method.
var BertrandTheory = map[string]float64{
	MethodEndpoints: 1.0 / 3,
	MethodRadius:    1.0 / 2,
	MethodMidpoint:  1.0 / 4,
}

// Chord is a chord of the unit circle.
type Chord struct {
	X1, Y1, X2, Y2 float64
}

// Len returns the chord's length.
func (c Chord) Len() float64 { return math.Hypot(c.X2-c.X1, c.Y2-c.Y1) }

// RandomChord draws a chord of the unit circle by the given method.
func RandomChord(rng *rand.Rand, method string) Chord {
	switch method {
	case MethodRadius:
		// A uniform point on a random radius is the chord's midpoint.
		return chordWithMidpoint(rng.Float64(), rng.Float64()*2*math.Pi)
	case MethodMidpoint:
		// A uniform point in the disc is the chord's midpoint.
		for {
			x, y := 2*rng.Float64()-1, 2*rng.Float64()-1
			if r := math.Hypot(x, y); r <= 1 {
				return chordWithMidpoint(r, math.Atan2(y, x))
			}
		}
	default:
		a, b := rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi
		return Chord{math.Cos(a), math.Sin(a), math.Cos(b), math.Sin(b)}
	}
}

func chordWithMidpoint(r, phi float64) Chord {
	half := math.Sqrt(1 - r*r)
	mx, my := r*math.Cos(phi), r*math.Sin(phi)
	dx, dy := -math.Sin(phi)*half, math.Cos(phi)*half
	return Chord{mx - dx, my - dy, mx + dx, my + dy}
}

// BertrandParadox shows how "a random chord" depends on how it is drawn.
func BertrandParadox(ctx context.Context, p *page.Page) error {
	p.Text("원에 임의로 현을 그을 때, 현의 길이가 내접 정삼각형의 한 변보다 길 확률은 얼마일까요? 답은 현을 '임의로' 고르는 방법에 따라 달라집니다.")
	method := p.Select("method", "현을 고르는 방법", []page.Option{
		{Value: MethodEndpoints, Label: "원 위의 두 점을 고른다"},
		{Value: MethodRadius, Label: "반지름 위의 한 점을 중점으로 한다"},
		{Value: MethodMidpoint, Label: "원 내부의 한 점을 중점으로 한다"},
	}, MethodEndpoints)
	n := p.IntSlider("n", "현의 개수", 50, 20000, 1000)
	rng := seeded(p)

	side := math.Sqrt(3)
	const drawn = 200
	size := float64(chart.Height * 2)
	svg := page.NewSVG(int(size), int(size))
	c := size / 2
	r := size/2 - 10
	svg.Add(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#444"/>`, c, c, r))

	long := 0
	for i := range n {
		ch := RandomChord(rng, method)
		isLong := ch.Len() > side
		if isLong {
			long++
		}
		if i < drawn {
			stroke := chart.Palette[0]
			if isLong {
				stroke = chart.Palette[1]
			}
			svg.Add(chart.Line(c+ch.X1*r, c-ch.Y1*r, c+ch.X2*r, c-ch.Y2*r, stroke, 0.8))
		}
	}
	p.SVG(svg.HTML())
	p.Caption(fmt.Sprintf("처음 %d개의 현을 그렸습니다. 주황색 현이 정삼각형의 변보다 긴 현입니다.", min(drawn, n)))
	p.Metric("긴 현의 상대도수", chart.Format(float64(long)/float64(n)))
	p.Metric("이론 확률", chart.Format(BertrandTheory[method]))
	return nil
}
