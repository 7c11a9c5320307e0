// Package live pushes content refreshes to open browser tabs.
//
// The Hub is a socket.io server mounted next to the views; every page
// connects to it and reloads itself when a "refresh" event arrives. The
// Watcher turns file system changes under the content root into reloads.
package live

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/zishang520/socket.io/v2/socket"
)

// RefreshEvent is emitted after a successful content reload.
const RefreshEvent = "refresh"

// Path is where the hub is mounted.
const Path = "/socket.io/"

// Refresh is the payload of RefreshEvent.
type Refresh struct {
	Version uint64 `json:"version"`
	Reason  string `json:"reason"`
}

// Hub tracks connected viewers and broadcasts to all of them.
type Hub struct {
	io      *socket.Server
	clients atomic.Int64
}

// NewHub creates a hub. Connections are logged with the context's logger.
func NewHub(ctx context.Context) *Hub {
	logger := ctxlog.FromContext(ctx).With("component", "live")
	h := &Hub{io: socket.NewServer(nil, nil)}

	h.io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		n := h.clients.Add(1)
		logger.Debug("Viewer connected.", "sid", client.Id(), "clients", n)

		client.On("disconnect", func(reason ...any) {
			n := h.clients.Add(-1)
			logger.Debug("Viewer disconnected.", "sid", client.Id(), "clients", n, "reason", reason)
		})
	})
	return h
}

// Handler serves the socket.io endpoint; mount it at Path.
func (h *Hub) Handler() http.Handler {
	opts := socket.DefaultServerOptions()
	opts.SetServeClient(false)
	return h.io.ServeHandler(opts)
}

// Broadcast sends a refresh to every connected viewer. Delivery is best
// effort; viewers that miss it pick up the new content on their next render.
func (h *Hub) Broadcast(r Refresh) {
	h.io.Emit(RefreshEvent, map[string]any{
		"version": r.Version,
		"reason":  r.Reason,
	})
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	return int(h.clients.Load())
}
