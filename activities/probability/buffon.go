package probability

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// Needle is one dropped needle: its centre's distance to the nearest line
// and its acute angle to the lines.
type Needle struct {
	Y, Theta float64
	Crosses  bool
}

// DropNeedles drops n needles of length l on lines d apart, l <= d.
func DropNeedles(rng *rand.Rand, l, d float64, n int) []Needle {
	out := make([]Needle, n)
	for i := range out {
		y := rng.Float64() * d / 2
		theta := rng.Float64() * math.Pi / 2
		out[i] = Needle{Y: y, Theta: theta, Crosses: y <= l/2*math.Sin(theta)}
	}
	return out
}

// EstimatePi returns 2ln/(d·hits), or NaN without hits.
func EstimatePi(l, d float64, n, hits int) float64 {
	if hits == 0 {
		return math.NaN()
	}
	return 2 * l * float64(n) / (d * float64(hits))
}

const drawnNeedles = 150

// BuffonNeedle estimates π from the crossing rate of dropped needles.
func BuffonNeedle(ctx context.Context, p *page.Page) error {
	p.Text("간격이 d인 평행선 위에 길이 l인 바늘을 던지면 바늘이 선과 만날 확률은 2l/(πd)입니다. 이 확률의 상대도수로 π를 추정해 봅시다.")
	l := p.Slider("l", "바늘의 길이 l (d = 1)", 0.1, 1, 0.05, 0.8)
	n := p.IntSlider("n", "던진 횟수", 100, 20000, 2000)
	rng := seeded(p)

	const d = 1.0
	needles := DropNeedles(rng, l, d, n)
	hits := 0
	for _, nd := range needles {
		if nd.Crosses {
			hits++
		}
	}
	est := EstimatePi(l, d, n, hits)

	p.Metric("선과 만난 바늘", fmt.Sprintf("%d / %d", hits, n))
	p.Metric("이론 확률 2l/π", chart.Format(2*l/math.Pi))
	if math.IsNaN(est) {
		p.Metric("π의 추정값", "-")
	} else {
		p.Metric("π의 추정값", chart.Format(est))
		p.Metric("오차", chart.Format(math.Abs(est-math.Pi)))
	}

	// Draw the first needles on a board of five lines.
	const lines = 5
	unit := float64(chart.Height*2) / (lines + 1)
	svg := page.NewSVG(chart.Width, chart.Height*2)
	for i := 1; i <= lines; i++ {
		svg.Add(chart.Line(0, float64(i)*unit, chart.Width, float64(i)*unit, "#999", 1))
	}
	draw := NewRand(n)
	for i, nd := range needles[:min(drawnNeedles, len(needles))] {
		line := 1 + i%(lines-1)
		side := 1.0
		if draw.IntN(2) == 0 {
			side = -1
		}
		cx := 20 + draw.Float64()*(chart.Width-40)
		cy := float64(line)*unit + side*nd.Y*unit
		dx := l / 2 * math.Cos(nd.Theta) * unit
		dy := l / 2 * math.Sin(nd.Theta) * unit
		if draw.IntN(2) == 0 {
			dx = -dx
		}
		stroke := chart.Palette[0]
		if nd.Crosses {
			stroke = chart.Palette[3]
		}
		svg.Add(chart.Line(cx-dx, cy-dy, cx+dx, cy+dy, stroke, 2))
	}
	p.SVG(svg.HTML())
	p.Caption(fmt.Sprintf("처음 %d개의 바늘만 그렸습니다. 빨간 바늘이 선과 만난 바늘입니다.", min(drawnNeedles, n)))
	return nil
}
