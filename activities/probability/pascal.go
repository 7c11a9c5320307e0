package probability

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// PascalMod returns the first rows of Pascal's triangle reduced modulo m.
// The additive rule is applied to residues, so large rows never overflow.
func PascalMod(rows, m int) [][]int {
	out := make([][]int, rows)
	for n := range rows {
		row := make([]int, n+1)
		row[0], row[n] = 1%m, 1%m
		for k := 1; k < n; k++ {
			row[k] = (out[n-1][k-1] + out[n-1][k]) % m
		}
		out[n] = row
	}
	return out
}

// PascalModuloView colours Pascal's triangle by C(n,k) mod m.
func PascalModuloView(ctx context.Context, p *page.Page) error {
	p.Text("파스칼의 삼각형의 각 수를 m으로 나눈 나머지에 따라 색칠합니다. m = 2일 때 시에르핀스키 삼각형이 나타납니다.")
	rows := p.IntSlider("rows", "행의 수", 1, 64, 32)
	mods := []page.Option{{Value: "2", Label: "2"}, {Value: "3", Label: "3"}, {Value: "4", Label: "4"}, {Value: "5", Label: "5"}, {Value: "7", Label: "7"}}
	m, _ := strconv.Atoi(p.Select("m", "나누는 수 m", mods, "2"))

	tri := PascalMod(rows, m)
	cell := float64(chart.Width) / float64(rows+1)
	if h := float64(chart.Height*2) / float64(rows); h < cell {
		cell = h
	}

	svg := page.NewSVG(chart.Width, chart.Height*2)
	zero := 0
	for n, row := range tri {
		left := float64(chart.Width)/2 - float64(n+1)*cell/2
		for k, r := range row {
			fill := "#f0f0f0"
			if r != 0 {
				fill = chart.Palette[(r-1)%len(chart.Palette)]
			} else {
				zero++
			}
			svg.Add(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
				left+float64(k)*cell, float64(n)*cell, cell*0.95, cell*0.95, fill))
		}
	}
	p.SVG(svg.HTML())

	total := rows * (rows + 1) / 2
	p.Metric("전체 항의 수", fmt.Sprint(total))
	p.Metric(fmt.Sprintf("%d의 배수인 항", m), fmt.Sprint(zero))
	p.Caption("회색 칸은 나머지가 0인 항입니다.")
	return nil
}
