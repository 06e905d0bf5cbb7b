package router

import (
	"sort"

	"github.com/minum-web/minum/http"
	"github.com/minum-web/minum/http/method"
	"github.com/minum-web/minum/http/requestline"
)

type exactKey struct {
	method method.Method
	path   string
}

type partialRoute struct {
	method  method.Method
	prefix  string
	handler http.Handler
}

// Router maps request lines onto handlers. Registration happens at
// configuration time only; after the server starts accepting, the tables
// are read-only and therefore safe to share across connections.
type Router struct {
	exact   map[exactKey]http.Handler
	partial []partialRoute
}

func New() *Router {
	return &Router{
		exact: make(map[exactKey]http.Handler),
	}
}

// Register binds a handler to the exact pair of method and path. The path is
// the isolated form: no leading slash.
func (r *Router) Register(m method.Method, path string, handler http.Handler) *Router {
	r.exact[exactKey{m, path}] = handler
	return r
}

// RegisterPartial binds a handler to every path sharing the given prefix.
// Among several matching prefixes the longest one wins; registration order
// breaks ties.
func (r *Router) RegisterPartial(m method.Method, prefix string, handler http.Handler) *Router {
	r.partial = append(r.partial, partialRoute{m, prefix, handler})
	sort.SliceStable(r.partial, func(i, j int) bool {
		return len(r.partial[i].prefix) > len(r.partial[j].prefix)
	})

	return r
}

// Find resolves a request line to a handler: the exact table first, the
// partial table second. A total miss returns nil, which the connection
// handler renders as 404 NOT FOUND.
func (r *Router) Find(line requestline.RequestLine) http.Handler {
	if handler, found := r.exact[exactKey{line.Method, line.Path.IsolatedPath}]; found {
		return handler
	}

	return r.FindPartial(line)
}

// FindPartial scans the prefix table alone. Exposed separately because the
// fallback behavior is worth testing in isolation.
func (r *Router) FindPartial(line requestline.RequestLine) http.Handler {
	for _, route := range r.partial {
		if route.method != line.Method {
			continue
		}

		if hasPrefix(line.Path.IsolatedPath, route.prefix) {
			return route.handler
		}
	}

	return nil
}

// shorthands for the everyday registrations

func (r *Router) Get(path string, handler http.Handler) *Router {
	return r.Register(method.GET, path, handler)
}

func (r *Router) Post(path string, handler http.Handler) *Router {
	return r.Register(method.POST, path, handler)
}

func (r *Router) Put(path string, handler http.Handler) *Router {
	return r.Register(method.PUT, path, handler)
}

func (r *Router) Delete(path string, handler http.Handler) *Router {
	return r.Register(method.DELETE, path, handler)
}

func (r *Router) Patch(path string, handler http.Handler) *Router {
	return r.Register(method.PATCH, path, handler)
}

func hasPrefix(path, prefix string) bool {
	return len(path) >= len(prefix) && path[:len(prefix)] == prefix
}
