// Package server is the HTTP surface of mathlab: the view handler that
// dispatches a route to the landing page, an activity or a curriculum node,
// plus the small operational endpoints around it.
package server

import (
	"context"
	"net/http"

	"github.com/vk/mathlab/internal/catalog"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/live"
	"github.com/vk/mathlab/internal/metrics"
	"github.com/vk/mathlab/internal/nav"
	"github.com/vk/mathlab/internal/session"
)

// DefaultTitle is the site title used when none is configured.
const DefaultTitle = "수학 탐구 교실"

// Source hands out the current content snapshot.
type Source interface {
	Catalog() *catalog.Catalog
}

// ReloadFunc rebuilds the content snapshot and returns its version.
type ReloadFunc func(ctx context.Context, reason string) (uint64, error)

// Options configures a Server. Every field is optional.
type Options struct {
	Title    string
	Subjects []nav.Subject // sidebar order; empty derives it from the catalog
	Sessions *session.Store
	Metrics  *metrics.Metrics
	Hub      *live.Hub
	Reload   ReloadFunc
}

// Server serves views and the operational endpoints.
type Server struct {
	ctx     context.Context
	src     Source
	opts    Options
	router  Router
	handler http.Handler
}

// New creates a server. ctx supplies the base logger for request logs.
func New(ctx context.Context, src Source, opts Options) *Server {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewStore(0)
	}
	s := &Server{ctx: ctx, src: src, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleView)
	mux.HandleFunc("GET /go", s.handleGoto)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /-/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/activities/{subject}", s.handleActivities)
	mux.HandleFunc("GET /api/curriculum/{subject}", s.handleCurriculum)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}

	outer := http.NewServeMux()
	if opts.Hub != nil {
		// The socket.io transport upgrades the connection, so it stays out
		// of the logging middleware.
		outer.Handle(live.Path, opts.Hub.Handler())
	}
	outer.Handle("/", s.withLogging(mux))
	s.handler = outer

	ctxlog.FromContext(ctx).Debug("HTTP routes configured.", "live_reload", opts.Hub != nil, "metrics", opts.Metrics != nil)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// subjects returns the configured sidebar order, or every catalog subject
// labelled by its ID.
func (s *Server) subjects(cat *catalog.Catalog) []nav.Subject {
	if len(s.opts.Subjects) > 0 {
		return s.opts.Subjects
	}
	ids := cat.Subjects()
	out := make([]nav.Subject, 0, len(ids))
	for _, id := range ids {
		out = append(out, nav.Subject{ID: id, Label: id})
	}
	return out
}

func (s *Server) label(cat *catalog.Catalog, subject string) string {
	for _, sub := range s.subjects(cat) {
		if sub.ID == subject {
			return sub.Label
		}
	}
	return subject
}
