// Package calculus holds the calculus activities.
package calculus

import "github.com/vk/mathlab/internal/handlers"

const subject = "calculus"

// Provider registers the calculus activities.
type Provider struct{}

// Register implements handlers.Provider.
func (Provider) Register(h *handlers.Handlers) {
	h.RegisterHandler(subject+"/riemann_sum", RiemannSum)
}
