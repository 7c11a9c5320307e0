package probability

import (
	"context"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// Seats labels the people around the table.
const Seats = "ABCDEFGH"

// Arrangements lists the circular arrangements of n people in
// lexicographic order. Person A is fixed in the first seat, so each
// arrangement is one representative of its rotation class.
func Arrangements(n int) [][]byte {
	rest := []byte(Seats[1:n])
	var out [][]byte
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			out = append(out, append([]byte{'A'}, rest...))
			return
		}
		for i := k; i < len(rest); i++ {
			// Rotating rest[k:i+1] keeps the suffix sorted, which
			// yields lexicographic order.
			rotate(rest[k:i+1], 1)
			permute(k + 1)
			rotate(rest[k:i+1], -1)
		}
	}
	permute(0)
	return out
}

func rotate(s []byte, d int) {
	if len(s) < 2 {
		return
	}
	if d > 0 {
		last := s[len(s)-1]
		copy(s[1:], s[:len(s)-1])
		s[0] = last
		return
	}
	first := s[0]
	copy(s, s[1:])
	s[len(s)-1] = first
}

// Rotate returns seats shifted r places clockwise.
func Rotate(seats []byte, r int) []byte {
	n := len(seats)
	out := make([]byte, n)
	for i := range seats {
		out[((i+r)%n+n)%n] = seats[i]
	}
	return out
}

// Canonical rotates seats so that A sits first.
func Canonical(seats []byte) []byte {
	i := strings.IndexByte(string(seats), 'A')
	if i < 0 {
		return seats
	}
	return Rotate(seats, -i)
}

// CircularPermAnchor counts circular arrangements by fixing one person.
func CircularPermAnchor(ctx context.Context, p *page.Page) error {
	p.Text("n명이 원탁에 둘러앉을 때, 회전하여 같아지는 배열은 같은 것으로 봅니다. 한 사람(A)의 자리를 고정하면 나머지 n-1명을 일렬로 세우는 것과 같으므로 경우의 수는 (n-1)!입니다.")
	n := p.IntSlider("n", "사람 수 n", 3, 8, 5)
	arr := Arrangements(n)
	idx := p.IntSlider("index", "살펴볼 배열 번호", 1, len(arr), 1)
	turn := p.IntSlider("turn", "회전", 0, n-1, 0)

	seats := Rotate(arr[idx-1], turn)
	p.SVG(roundTable(seats))
	if turn == 0 {
		p.Caption(fmt.Sprintf("%d번 배열: %s", idx, string(seats)))
	} else {
		p.Caption(fmt.Sprintf("%d번 배열을 %d칸 돌린 모습: %s (A를 기준으로 읽으면 %s)", idx, turn, string(seats), string(Canonical(seats))))
	}

	p.Metric("일렬로 세우는 경우의 수 n!", fmt.Sprint(factorial(n)))
	p.Metric("원순열의 수 (n-1)!", fmt.Sprint(len(arr)))

	const shown = 24
	rows := make([][]string, 0, min(shown, len(arr)))
	for i, a := range arr[:min(shown, len(arr))] {
		rows = append(rows, []string{fmt.Sprint(i + 1), spaced(a)})
	}
	p.Table([]string{"번호", "A부터 시계 방향"}, rows)
	if len(arr) > shown {
		p.Caption(fmt.Sprintf("전체 %d개 중 처음 %d개만 표시했습니다.", len(arr), shown))
	}
	return nil
}

func roundTable(seats []byte) template.HTML {
	const size = 320
	svg := page.NewSVG(size, size)
	c, r := size/2.0, size/2.0-40
	svg.Add(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#f7f1e3" stroke="#8c6d31"/>`, c, c, r-24))
	for i, s := range seats {
		a := 2*math.Pi*float64(i)/float64(len(seats)) - math.Pi/2
		x, y := c+r*math.Cos(a), c+r*math.Sin(a)
		fill := chart.Palette[0]
		if s == 'A' {
			fill = chart.Palette[3]
		}
		svg.Add(
			fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="18" fill="%s"/>`, x, y, fill),
			fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" fill="#fff" font-size="16">%c</text>`, x, y, s),
		)
	}
	return svg.HTML()
}

func factorial(n int) int {
	f := 1
	for k := 2; k <= n; k++ {
		f *= k
	}
	return f
}

func spaced(seats []byte) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = string(s)
	}
	return strings.Join(parts, " → ")
}
