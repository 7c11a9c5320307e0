package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vk/mathlab/internal/catalog"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/handlers"
	"github.com/vk/mathlab/internal/live"
	"github.com/vk/mathlab/internal/metrics"
	"github.com/vk/mathlab/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	site     *Site
	handlers *handlers.Handlers
	metrics  *metrics.Metrics
	hub      *live.Hub
	sessions *session.Store

	current  atomic.Pointer[catalog.Catalog]
	version  atomic.Uint64
	reloadMu sync.Mutex

	ready chan struct{}
	addr  string
}

// NewApp is the constructor for the main application. It loads the site
// file and the content; any load error is returned, which is fatal at
// startup. Without explicit handlers the built-in activities are used.
func NewApp(outW io.Writer, cfg *Config, h *handlers.Handlers) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	site := DefaultSite()
	if cfg.SitePath != "" {
		loaded, err := LoadSite(cfg.SitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load site file: %w", err)
		}
		site = loaded
		logger.Debug("Site file loaded.", "path", cfg.SitePath, "subjects", len(site.Subjects))
	}

	if h == nil {
		h = CoreHandlers()
	}
	logger.Debug("Render entries registered.", "count", len(h.Names()))

	a := &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   cfg,
		site:     site,
		handlers: h,
		metrics:  metrics.New(),
		hub:      live.NewHub(ctx),
		sessions: session.NewStore(cfg.SessionTTL),
		ready:    make(chan struct{}),
	}

	cat, err := catalog.Load(ctx, cfg.ContentRoot, h)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	a.install(cat)
	logger.Info("Content loaded.", "root", cfg.ContentRoot, "subjects", cat.Subjects(), "version", cat.Version)
	return a, nil
}

// Catalog returns the current content snapshot.
func (a *App) Catalog() *catalog.Catalog {
	return a.current.Load()
}

// Site returns the site configuration in effect.
func (a *App) Site() *Site {
	return a.site
}

// Reload builds a fresh snapshot and swaps it in. On failure the previous
// snapshot stays in place and the error is returned.
func (a *App) Reload(ctx context.Context, reason string) (uint64, error) {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()
	logger := ctxlog.FromContext(ctx)

	cat, err := catalog.Load(ctx, a.config.ContentRoot, a.handlers)
	if err != nil {
		a.metrics.Reload(false)
		logger.Error("Content reload failed; keeping the previous snapshot.", "reason", reason, "error", err)
		return 0, fmt.Errorf("reload failed: %w", err)
	}
	a.install(cat)
	a.metrics.Reload(true)
	logger.Info("Content reloaded.", "reason", reason, "version", cat.Version)

	a.hub.Broadcast(live.Refresh{Version: cat.Version, Reason: reason})
	logger.Debug("Viewers notified of the reload.", "viewers", a.hub.Clients())
	return cat.Version, nil
}

func (a *App) install(cat *catalog.Catalog) {
	cat.Version = a.version.Add(1)
	a.current.Store(cat)
	a.metrics.SetActivities(cat.Counts())
}
