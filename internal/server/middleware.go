package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"supplychain-insights/internal/common/metrics"
)

// recoverer turns a panic into the 500 error envelope.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.Error("request panicked", map[string]interface{}{
				"requestId": middleware.GetReqID(r.Context()),
				"path":      r.URL.Path,
				"panic":     fmt.Sprint(rec),
				"stack":     string(debug.Stack()),
			})
			s.writeError(w, http.StatusInternalServerError, fmt.Errorf("unexpected failure: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}

// instrument records request count and latency by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		s.logger.Debug("request served", map[string]interface{}{
			"requestId": middleware.GetReqID(r.Context()),
			"method":    r.Method,
			"route":     route,
			"status":    status,
			"duration":  time.Since(start).String(),
		})
	})
}
