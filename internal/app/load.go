package app

import (
	"context"
	"io"

	"github.com/vk/mathlab/internal/catalog"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/handlers"
)

// Load reads the site file and the content once, without serving. Load
// errors are returned unwrapped so every problem can be listed.
func Load(outW io.Writer, cfg *Config, h *handlers.Handlers) (*catalog.Catalog, *Site, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	site := DefaultSite()
	if cfg.SitePath != "" {
		loaded, err := LoadSite(cfg.SitePath)
		if err != nil {
			return nil, nil, err
		}
		site = loaded
	}
	if h == nil {
		h = CoreHandlers()
	}

	logger.Debug("Loading content...", "root", cfg.ContentRoot)
	cat, err := catalog.Load(ctx, cfg.ContentRoot, h)
	if err != nil {
		return nil, site, err
	}
	return cat, site, nil
}
