package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vk/mathlab/internal/ctxlog"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// withLogging puts a request-scoped logger into the request context and
// logs every request once it is served.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := ctxlog.FromContext(s.ctx).With("request_id", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctxlog.WithLogger(r.Context(), logger)))

		level := logger.Info
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			level = logger.Debug
		}
		level("Request served.",
			"method", r.Method,
			"path", r.URL.Path,
			"route", r.URL.Query().Get(routeParam),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
