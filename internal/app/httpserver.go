package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/server"
)

const shutdownTimeout = 5 * time.Second

// startHTTPServer binds the listener and serves in the background. Serve
// errors other than a graceful close are sent on the returned channel.
func (a *App) startHTTPServer(ctx context.Context) (*http.Server, <-chan error, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring HTTP server.")

	handler := server.New(ctx, a, server.Options{
		Title:    a.site.Site.Title,
		Subjects: a.site.Subjects,
		Sessions: a.sessions,
		Metrics:  a.metrics,
		Hub:      a.hub,
		Reload:   a.Reload,
	})

	ln, err := net.Listen("tcp", a.config.addr(a.site))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen: %w", err)
	}
	a.addr = ln.Addr().String()
	close(a.ready)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("🧮 HTTP server starting", "address", fmt.Sprintf("http://%s/", a.addr))
		// Serve returns http.ErrServerClosed on graceful shutdown.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed unexpectedly", "error", err)
			errc <- err
		}
		close(errc)
	}()
	return srv, errc, nil
}

func (a *App) closeHTTPServer(ctx context.Context, srv *http.Server) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Closing HTTP server...")

	if srv == nil {
		logger.Debug("HTTP server was not running.")
		return nil
	}

	// The serving context is already done; shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("🧮 Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}

	logger.Debug("HTTP server shut down gracefully.")
	return nil
}

// Ready is closed once the server listens.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Addr returns the bound listen address, blocking until the server listens.
func (a *App) Addr() string {
	<-a.ready
	return a.addr
}
