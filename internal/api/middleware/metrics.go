package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/auradaily/aura-api/internal/observability"
)

// MetricsMiddleware records request count and latency per route. The
// route label uses the chi route pattern rather than the raw path so
// parameterized routes do not explode label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		observability.RecordHTTPRequest(
			r.Method,
			route,
			strconv.Itoa(ww.Status()),
			time.Since(started),
		)
	})
}
