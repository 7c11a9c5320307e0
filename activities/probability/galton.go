package probability

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// DropBalls drops balls through a board of rows pins, each pin sending a
// ball right with probability pr, and returns the count in each of the
// rows+1 bins.
func DropBalls(rng *rand.Rand, rows, balls int, pr float64) []int {
	bins := make([]int, rows+1)
	for range balls {
		k := 0
		for range rows {
			if rng.Float64() < pr {
				k++
			}
		}
		bins[k]++
	}
	return bins
}

// BinomialPMF returns P(X = k) for k = 0..n, X ~ B(n, pr).
func BinomialPMF(n int, pr float64) []float64 {
	out := make([]float64, n+1)
	for k := range out {
		lg := lchoose(n, k)
		switch {
		case pr == 0:
			out[k] = boolFloat(k == 0)
		case pr == 1:
			out[k] = boolFloat(k == n)
		default:
			out[k] = math.Exp(lg + float64(k)*math.Log(pr) + float64(n-k)*math.Log1p(-pr))
		}
	}
	return out
}

func lchoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// GaltonBoard compares a Galton board with the binomial distribution.
func GaltonBoard(ctx context.Context, p *page.Page) error {
	p.Text("공이 못을 하나 지날 때마다 확률 p로 오른쪽, 1-p로 왼쪽으로 떨어집니다. 도착한 칸의 번호는 이항분포 B(n, p)를 따릅니다.")
	rows := p.IntSlider("rows", "못의 줄 수 n", 1, 30, 12)
	balls := p.IntSlider("balls", "공의 개수", 10, 5000, 1000)
	pr := p.Slider("p", "오른쪽으로 갈 확률 p", 0.05, 0.95, 0.05, 0.5)
	rng := seeded(p)

	bins := DropBalls(rng, rows, balls, pr)
	pmf := BinomialPMF(rows, pr)

	bars := make([]chart.Bar, len(bins))
	expected := make([]float64, len(bins))
	mean := 0.0
	for k, c := range bins {
		bars[k] = chart.Bar{Label: fmt.Sprint(k), Value: float64(c)}
		expected[k] = pmf[k] * float64(balls)
		mean += float64(k*c) / float64(balls)
	}
	p.SVG(chart.Bars(bars, expected))
	p.Caption("막대는 실제로 도착한 공의 수, 빨간 선은 이항분포로 기대되는 공의 수입니다.")
	p.Metric("표본평균", chart.Format(mean))
	p.Metric("이론 평균 np", chart.Format(float64(rows)*pr))
	return nil
}
