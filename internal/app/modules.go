package app

import (
	"github.com/vk/mathlab/activities/calculus"
	"github.com/vk/mathlab/activities/probability"
	"github.com/vk/mathlab/internal/handlers"
)

// coreProviders is the definitive list of all activity packages that are
// compiled into the mathlab binary.
var coreProviders = []handlers.Provider{
	probability.Provider{},
	calculus.Provider{},
}

// CoreHandlers returns the render entries of the built-in activities.
func CoreHandlers() *handlers.Handlers {
	return handlers.Install(coreProviders...)
}
