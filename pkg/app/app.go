// Package app assembles the chefmenu HTTP application.
//
//	a := app.New().
//	    RateLimiter(middleware.NewMemoryLimiter(200, time.Minute)).
//	    Routes(func(r *router.Router) {
//	        routes.RegisterAPI(r, deps)
//	    })
//
//	app.PrintRoutes(os.Stdout, a.RouteList())
//	err := a.Serve(ctx, ":8080")
package app

import (
	"net/http"
	"sync"

	"github.com/shashiranjanraj/chefmenu/pkg/middleware"
	"github.com/shashiranjanraj/chefmenu/pkg/router"
)

// Application is the central configuration object. Build one with New(),
// attach routes, then call Handler() or Serve().
type Application struct {
	routesFns []func(*router.Router)
	limiter   middleware.Limiter
	cors      middleware.CORSOptions

	once    sync.Once
	router  *router.Router
	handler http.Handler
}

// New creates an Application with the default CORS policy and no rate limit.
func New() *Application {
	return &Application{cors: middleware.DefaultCORSOptions()}
}

// Routes registers a route-registration callback. Callbacks run in order
// when the handler is first built.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// RateLimiter puts l in front of every route except /metrics.
func (a *Application) RateLimiter(l middleware.Limiter) *Application {
	a.limiter = l
	return a
}

// CORS replaces the default CORS policy.
func (a *Application) CORS(opts middleware.CORSOptions) *Application {
	a.cors = opts
	return a
}

// Handler builds the router once and returns it.
func (a *Application) Handler() http.Handler {
	a.build()
	return a.handler
}

// RouteList returns every registered endpoint, sorted by path.
func (a *Application) RouteList() []router.Route {
	a.build()
	return a.router.Routes()
}

func (a *Application) build() {
	a.once.Do(func() {
		a.router = buildRouter(a)
		a.handler = a.router.Handler()
	})
}
