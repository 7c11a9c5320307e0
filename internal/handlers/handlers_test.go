package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mathlab/internal/page"
)

func noop(context.Context, *page.Page) error { return nil }

type fakeProvider struct{ names []string }

func (f fakeProvider) Register(h *Handlers) {
	for _, n := range f.names {
		h.RegisterHandler(n, noop)
	}
}

func TestInstall(t *testing.T) {
	h := Install(fakeProvider{names: []string{"probability/b", "probability/a"}}, fakeProvider{names: []string{"calculus/c"}})

	assert.Equal(t, []string{"calculus/c", "probability/a", "probability/b"}, h.Names())

	fn, ok := h.Lookup("probability/a")
	require.True(t, ok)
	require.NotNil(t, fn)

	_, ok = h.Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterHandler_PanicsOnDuplicate(t *testing.T) {
	h := New()
	h.RegisterHandler("x", noop)
	assert.Panics(t, func() { h.RegisterHandler("x", noop) })
}

func TestRegisterHandler_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { New().RegisterHandler("x", nil) })
}

func TestNilTable(t *testing.T) {
	var h *Handlers
	_, ok := h.Lookup("x")
	assert.False(t, ok)
	assert.Nil(t, h.Names())
}
