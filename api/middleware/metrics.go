package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const unmatchedRoute = "unmatched"

type requestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// Metrics records one observation per request labelled by the chi route
// pattern, so ids in the path do not explode label cardinality.
func Metrics(observer requestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if observer == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			observer.ObserveRequest(r.Method, routePattern(r), rec.Status(), time.Since(start))
		})
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
