package probability

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// Population is a distribution to sample from.
type Population struct {
	Name     string
	Mean, SD float64
	Lo, Hi   float64 // histogram range of sample means
	Draw     func(rng *rand.Rand) float64
}

// Populations are the selectable populations by key.
var Populations = map[string]Population{
	"uniform": {
		Name: "균등분포 U(0, 1)", Mean: 0.5, SD: math.Sqrt(1.0 / 12), Lo: 0, Hi: 1,
		Draw: func(rng *rand.Rand) float64 { return rng.Float64() },
	},
	"exponential": {
		Name: "지수분포 (평균 1)", Mean: 1, SD: 1, Lo: 0, Hi: 3,
		Draw: func(rng *rand.Rand) float64 { return rng.ExpFloat64() },
	},
	"bernoulli": {
		Name: "베르누이 분포 (p = 0.3)", Mean: 0.3, SD: math.Sqrt(0.3 * 0.7), Lo: 0, Hi: 1,
		Draw: func(rng *rand.Rand) float64 { return boolFloat(rng.Float64() < 0.3) },
	},
}

// SampleMeans returns the means of reps samples of size n.
func SampleMeans(rng *rand.Rand, pop Population, n, reps int) []float64 {
	out := make([]float64, reps)
	for i := range out {
		sum := 0.0
		for range n {
			sum += pop.Draw(rng)
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Histogram counts xs in bins equal-width bins over [lo, hi]. Values
// outside the range land in the end bins.
func Histogram(xs []float64, bins int, lo, hi float64) []int {
	out := make([]int, bins)
	w := (hi - lo) / float64(bins)
	for _, x := range xs {
		k := int(math.Floor((x - lo) / w))
		out[max(0, min(bins-1, k))]++
	}
	return out
}

// MeanSD returns the mean and the population standard deviation of xs.
func MeanSD(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	m := 0.0
	for _, x := range xs {
		m += x
	}
	m /= float64(len(xs))
	v := 0.0
	for _, x := range xs {
		v += (x - m) * (x - m)
	}
	return m, math.Sqrt(v / float64(len(xs)))
}

// SamplingDistribution shows the distribution of the sample mean.
func SamplingDistribution(ctx context.Context, p *page.Page) error {
	p.Text("모집단에서 크기 n인 표본을 여러 번 뽑아 표본평균의 분포를 그립니다. n이 커질수록 표본평균의 분포는 정규분포에 가까워지고 퍼짐은 σ/√n으로 줄어듭니다.")
	key := p.Select("population", "모집단", []page.Option{
		{Value: "uniform", Label: Populations["uniform"].Name},
		{Value: "exponential", Label: Populations["exponential"].Name},
		{Value: "bernoulli", Label: Populations["bernoulli"].Name},
	}, "uniform")
	n := p.IntSlider("n", "표본의 크기 n", 1, 100, 10)
	reps := p.IntSlider("reps", "반복 횟수", 100, 10000, 2000)
	rng := seeded(p)

	pop := Populations[key]
	means := SampleMeans(rng, pop, n, reps)

	const bins = 30
	hist := Histogram(means, bins, pop.Lo, pop.Hi)
	w := (pop.Hi - pop.Lo) / bins
	se := pop.SD / math.Sqrt(float64(n))
	bars := make([]chart.Bar, bins)
	normal := make([]float64, bins)
	for k, c := range hist {
		mid := pop.Lo + (float64(k)+0.5)*w
		label := ""
		if k%5 == 0 {
			label = chart.Format(pop.Lo + float64(k)*w)
		}
		bars[k] = chart.Bar{Label: label, Value: float64(c)}
		normal[k] = float64(reps) * w * math.Exp(-0.5*math.Pow((mid-pop.Mean)/se, 2)) / (se * math.Sqrt(2*math.Pi))
	}
	p.SVG(chart.Bars(bars, normal))
	p.Caption("빨간 선은 평균 μ, 표준편차 σ/√n인 정규분포 곡선입니다.")

	m, sd := MeanSD(means)
	p.Table([]string{"", "표본평균들의 값", "이론값"}, [][]string{
		{"평균", chart.Format(m), chart.Format(pop.Mean)},
		{"표준편차", chart.Format(sd), chart.Format(se)},
	})
	p.Caption(fmt.Sprintf("표본 %d개 × 크기 %d", reps, n))
	return nil
}
