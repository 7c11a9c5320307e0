package probability

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/vk/mathlab/activities/chart"
	"github.com/vk/mathlab/internal/page"
)

// MontyResult counts the wins of both strategies over the same games.
type MontyResult struct {
	Games, StayWins, SwitchWins int
}

// PlayMonty plays games with the given number of doors. The host opens
// every door except the player's and one other, never revealing the car.
func PlayMonty(rng *rand.Rand, doors, games int) MontyResult {
	res := MontyResult{Games: games}
	for range games {
		car := rng.IntN(doors)
		pick := rng.IntN(doors)

		// The door left closed by the host.
		other := car
		if pick == car {
			other = rng.IntN(doors - 1)
			if other >= pick {
				other++
			}
		}

		if pick == car {
			res.StayWins++
		}
		if other == car {
			res.SwitchWins++
		}
	}
	return res
}

// MontyHall compares staying with switching.
func MontyHall(ctx context.Context, p *page.Page) error {
	p.Text("참가자가 문 하나를 고르면, 진행자가 염소가 있는 문을 열어 닫힌 문을 두 개만 남깁니다. 처음 고른 문을 지킬까요, 바꿀까요?")
	doors := p.IntSlider("doors", "문의 수", 3, 10, 3)
	games := p.IntSlider("games", "게임 횟수", 10, 10000, 1000)
	rng := seeded(p)

	res := PlayMonty(rng, doors, games)
	stay := float64(res.StayWins) / float64(games)
	sw := float64(res.SwitchWins) / float64(games)

	p.Table([]string{"전략", "이긴 횟수", "상대도수", "이론 확률"}, [][]string{
		{"그대로", fmt.Sprint(res.StayWins), chart.Format(stay), fmt.Sprintf("1/%d", doors)},
		{"바꾸기", fmt.Sprint(res.SwitchWins), chart.Format(sw), fmt.Sprintf("%d/%d", doors-1, doors)},
	})
	p.SVG(chart.Bars([]chart.Bar{
		{Label: "그대로", Value: stay},
		{Label: "바꾸기", Value: sw, Highlight: true},
	}, nil))
	return nil
}
