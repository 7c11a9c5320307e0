// Package probability holds the probability and statistics activities.
//
// Every simulation draws from a generator seeded by the page's "seed"
// widget, so a rerender with the same widget values shows the same result.
package probability

import (
	"math/rand/v2"

	"github.com/vk/mathlab/internal/handlers"
	"github.com/vk/mathlab/internal/page"
)

const subject = "probability"

// DefaultSeed is the initial value of the seed widget.
const DefaultSeed = 2025

// Provider registers the probability activities.
type Provider struct{}

// Register implements handlers.Provider.
func (Provider) Register(h *handlers.Handlers) {
	h.RegisterHandler(subject+"/pascal_modulo_view", PascalModuloView)
	h.RegisterHandler(subject+"/buffon_needle_p5", BuffonNeedle)
	h.RegisterHandler(subject+"/monty_hall_p5", MontyHall)
	h.RegisterHandler(subject+"/galton_board", GaltonBoard)
	h.RegisterHandler(subject+"/bertrand_paradox", BertrandParadox)
	h.RegisterHandler(subject+"/confidence_interval", ConfidenceInterval)
	h.RegisterHandler(subject+"/sampling_distribution", SamplingDistribution)
	h.RegisterHandler(subject+"/mini/circular_perm_anchor_p5", CircularPermAnchor)
}

// NewRand returns a generator determined by seed.
func NewRand(seed int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x6d6174686c6162))
}

// seeded renders the seed widget and returns its generator.
func seeded(p *page.Page) *rand.Rand {
	return NewRand(p.Number("seed", "난수 시드", 0, 999999, DefaultSeed))
}
