package app

import (
	"net/http"

	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
	"github.com/shashiranjanraj/chefmenu/pkg/middleware"
	"github.com/shashiranjanraj/chefmenu/pkg/reqid"
	"github.com/shashiranjanraj/chefmenu/pkg/response"
	"github.com/shashiranjanraj/chefmenu/pkg/router"
)

// buildRouter sets up the global middleware stack, then runs the
// route-registration callbacks.
func buildRouter(a *Application) *router.Router {
	r := router.New()

	// Outermost first:
	//  1. Prometheus metrics, so latency covers everything below
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(a.cors))
	if a.limiter != nil {
		r.Use(exceptMetrics(middleware.RateLimit(a.limiter)))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	r.Handle(http.MethodGet, metricsPath, "metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}

const metricsPath = "/metrics"

// exceptMetrics keeps Prometheus scrapes out of the rate limiter.
func exceptMetrics(mw router.Middleware) router.Middleware {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == metricsPath {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
