package api

import (
	"net/http"
	"time"

	"github.com/bastiangx/wordindex/pkg/metrics"
)

// requestLoggerMiddleware logs the method, URL path, status and duration for each request.
func (h *Handler) requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := metrics.NewStatusWriter(w)
		next.ServeHTTP(sw, r)
		h.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "status", sw.Status(), "took", time.Since(start))
	})
}
