// Package router wraps chi with named routes and prefix groups so the CLI
// can list endpoints and handlers can build URLs by name.
package router

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// Route describes one registered endpoint.
type Route struct {
	Method string
	Path   string
	Name   string
}

// Router is the root group. Routes registered on it or on any sub-group
// share one chi mux and one name table.
type Router struct {
	top *Group
	mux chi.Router

	mu     sync.RWMutex
	named  map[string]string
	routes []Route
}

// Group registers routes under a path prefix with its own middleware.
type Group struct {
	root   *Router
	prefix string
	mws    []Middleware
}

func New() *Router {
	r := &Router{mux: chi.NewRouter(), named: make(map[string]string)}
	r.top = &Group{root: r, prefix: "/"}
	return r
}

func (r *Router) Handler() http.Handler { return r.mux }

func (r *Router) Group(prefix string, mws ...Middleware) *Group { return r.top.Group(prefix, mws...) }

func (r *Router) Get(pattern, name string, h http.HandlerFunc, mws ...Middleware) {
	r.top.Get(pattern, name, h, mws...)
}

func (r *Router) Post(pattern, name string, h http.HandlerFunc, mws ...Middleware) {
	r.top.Post(pattern, name, h, mws...)
}

func (r *Router) Delete(pattern, name string, h http.HandlerFunc, mws ...Middleware) {
	r.top.Delete(pattern, name, h, mws...)
}

func (r *Router) Handle(method, pattern, name string, h http.Handler, mws ...Middleware) {
	r.top.Handle(method, pattern, name, h, mws...)
}

// Use adds global middleware. chi requires this before the first route.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(h http.HandlerFunc) { r.mux.NotFound(h) }

// MethodNotAllowed sets the handler for known paths hit with the wrong verb.
func (r *Router) MethodNotAllowed(h http.HandlerFunc) { r.mux.MethodNotAllowed(h) }

// Path returns the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.named[name]
	return p, ok
}

// URL fills the {params} of the named route. Values are path-escaped.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	p, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("router: no route named %q", name)
	}

	var missing []string
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		key := strings.Trim(seg, "{}")
		if k, _, found := strings.Cut(key, ":"); found {
			key = k
		}
		v, ok := params[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		segments[i] = url.PathEscape(v)
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("router: route %q needs %s", name, strings.Join(missing, ", "))
	}
	return strings.Join(segments, "/"), nil
}

// Routes lists every registered endpoint sorted by path, then method.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	out := append([]Route(nil), r.routes...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// add panics on a reused name, like chi does on a conflicting pattern.
func (r *Router) add(method, pattern, name string, h http.Handler) {
	r.mu.Lock()
	if name != "" {
		if prev, dup := r.named[name]; dup {
			r.mu.Unlock()
			panic(fmt.Sprintf("router: route name %q already used by %s", name, prev))
		}
		r.named[name] = pattern
	}
	r.routes = append(r.routes, Route{Method: method, Path: pattern, Name: name})
	r.mu.Unlock()

	r.mux.Method(method, pattern, h)
}

// Group returns a sub-group whose prefix and middleware extend g's.
func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		root:   g.root,
		prefix: clean(g.prefix, prefix),
		mws:    append(append([]Middleware(nil), g.mws...), mws...),
	}
}

func (g *Group) Get(pattern, name string, h http.HandlerFunc, mws ...Middleware) {
	g.Handle(http.MethodGet, pattern, name, h, mws...)
}

func (g *Group) Post(pattern, name string, h http.HandlerFunc, mws ...Middleware) {
	g.Handle(http.MethodPost, pattern, name, h, mws...)
}

func (g *Group) Delete(pattern, name string, h http.HandlerFunc, mws ...Middleware) {
	g.Handle(http.MethodDelete, pattern, name, h, mws...)
}

// Handle mounts any http.Handler (metrics, GraphQL) for one method. An
// empty name leaves the route out of URL lookups.
func (g *Group) Handle(method, pattern, name string, h http.Handler, mws ...Middleware) {
	all := append(append([]Middleware(nil), g.mws...), mws...)
	for i := len(all) - 1; i >= 0; i-- {
		h = all[i](h)
	}
	g.root.add(method, clean(g.prefix, pattern), name, h)
}

func clean(prefix, p string) string { return path.Join("/", prefix, p) }
