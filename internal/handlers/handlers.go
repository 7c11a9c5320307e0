// Package handlers holds the compiled render entries of activities, keyed by
// the entry name their manifests refer to.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/mathlab/internal/activity"
)

// Provider is implemented by every package that ships activities. It
// registers the package's render entries.
type Provider interface {
	Register(h *Handlers)
}

// Handlers holds all the registered render entries.
type Handlers struct {
	all map[string]activity.RenderFunc
}

// New creates an empty handler table.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]activity.RenderFunc),
	}
}

// Install creates a table filled by the given providers.
func Install(providers ...Provider) *Handlers {
	h := New()
	for _, p := range providers {
		p.Register(h)
	}
	return h
}

// RegisterHandler registers a render entry under name.
func (r *Handlers) RegisterHandler(name string, fn activity.RenderFunc) {
	if fn == nil {
		panic(fmt.Sprintf("render entry '%s' is nil", name))
	}
	if _, exists := r.all[name]; exists {
		panic(fmt.Sprintf("render entry with name '%s' already registered", name))
	}
	slog.Debug("Registering render entry.", "name", name)
	r.all[name] = fn
}

// Lookup returns the render entry registered under name.
func (r *Handlers) Lookup(name string) (activity.RenderFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.all[name]
	return fn, ok
}

// Names lists the registered entry names in sorted order.
func (r *Handlers) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.all))
	for name := range r.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
