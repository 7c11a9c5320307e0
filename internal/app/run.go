package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vk/mathlab/internal/catalog"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/live"
)

// Run serves until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	srv, errc, err := a.startHTTPServer(ctx)
	if err != nil {
		return err
	}

	go a.sweepSessions(ctx)

	if a.config.Watch {
		w := &live.Watcher{
			Dirs: []string{
				filepath.Join(a.config.ContentRoot, catalog.ActivitiesDir),
				filepath.Join(a.config.ContentRoot, catalog.CurriculumDir),
			},
			OnChange: func(ctx context.Context, reason string) {
				// Failures are logged by Reload and the old snapshot stays.
				_, _ = a.Reload(ctx, reason)
			},
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				a.logger.Error("Content watcher stopped.", "error", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-errc:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	if err := a.closeHTTPServer(ctx, srv); err != nil && runErr == nil {
		runErr = err
	}
	a.logger.Debug("App.Run method finished.")
	return runErr
}

// sweepSessions drops idle sessions until ctx is done.
func (a *App) sweepSessions(ctx context.Context) {
	interval := a.sessions.TTL() / 4
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.sessions.Sweep(now); n > 0 {
				a.logger.Debug("Idle sessions dropped.", "count", n)
			}
		}
	}
}
