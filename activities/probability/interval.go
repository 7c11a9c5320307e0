package probability

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// zScores are the two-sided critical values of the standard normal
// distribution by confidence level.
var zScores = map[string]float64{
	"90": 1.645,
	"95": 1.96,
	"99": 2.576,
}

// Interval is one confidence interval for the population mean.
type Interval struct {
	Mean, Lo, Hi float64
	Covers       bool
}

// Intervals draws count samples of size n from N(mu, sigma²) and returns
// the interval x̄ ± z·σ/√n of each.
func Intervals(rng *rand.Rand, mu, sigma float64, n int, z float64, count int) []Interval {
	half := z * sigma / math.Sqrt(float64(n))
	out := make([]Interval, count)
	for i := range out {
		sum := 0.0
		for range n {
			sum += mu + sigma*rng.NormFloat64()
		}
		m := sum / float64(n)
		out[i] = Interval{Mean: m, Lo: m - half, Hi: m + half, Covers: m-half <= mu && mu <= m+half}
	}
	return out
}

// ConfidenceInterval repeats interval estimation and counts the intervals
// that contain the population mean.
func ConfidenceInterval(ctx context.Context, p *page.Page) error {
	const mu, sigma = 50.0, 10.0
	p.Textf("모평균 %s, 모표준편차 %s인 정규모집단에서 표본을 뽑아 모평균의 신뢰구간을 여러 번 구합니다.", chart.Format(mu), chart.Format(sigma))
	n := p.IntSlider("n", "표본의 크기 n", 5, 200, 30)
	level := p.Select("level", "신뢰도", []page.Option{
		{Value: "90", Label: "90%"},
		{Value: "95", Label: "95%"},
		{Value: "99", Label: "99%"},
	}, "95")
	count := p.IntSlider("count", "구간의 개수", 10, 200, 100)
	rng := seeded(p)

	ivs := Intervals(rng, mu, sigma, n, zScores[level], count)
	covered := 0
	lo, hi := mu, mu
	for _, iv := range ivs {
		if iv.Covers {
			covered++
		}
		lo, hi = math.Min(lo, iv.Lo), math.Max(hi, iv.Hi)
	}

	x, y := chart.Plot(lo, hi, 0, float64(count))
	svg := page.NewSVG(chart.Width, chart.Height)
	for i, iv := range ivs {
		stroke := chart.Palette[0]
		if !iv.Covers {
			stroke = chart.Palette[3]
		}
		yy := y.Map(float64(i) + 0.5)
		svg.Add(chart.Line(x.Map(iv.Lo), yy, x.Map(iv.Hi), yy, stroke, 1.5))
	}
	svg.Add(chart.Line(x.Map(mu), y.Map(0), x.Map(mu), y.Map(float64(count)), "#222", 1))
	p.SVG(svg.HTML())
	p.Caption("세로선은 모평균입니다. 빨간 구간은 모평균을 포함하지 않은 구간입니다.")

	p.Metric("모평균을 포함한 구간", fmt.Sprintf("%d / %d", covered, count))
	p.Metric("포함 비율", chart.Format(float64(covered)/float64(count)))
	p.Metric("구간의 길이", chart.Format(2*zScores[level]*sigma/math.Sqrt(float64(n))))
	return nil
}
