package dispatch

import (
	"net/http"
	"slices"
	"strings"
)

// Route is a fluent handle to a path being configured. Server.At creates
// one, after which endpoints for individual HTTP methods can be attached,
// middleware accumulated, sub-paths extended, or a whole sub-dispatcher
// nested.
//
// Routes are only valid while the owning Server is configuring; once the
// Server starts serving, registration through any Route panics.
type Route struct {
	server     *Server
	path       string
	middleware []Middleware
}

func newRoute(s *Server, path string) *Route {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &Route{server: s, path: path}
}

// At extends the route with the given path, normalizing a single "/"
// separator. The new Route snapshots the current middleware accumulation:
// later With calls on the parent do not affect children created earlier.
func (r *Route) At(path string) *Route {
	p := r.path
	if !strings.HasSuffix(p, "/") && !strings.HasPrefix(path, "/") {
		p += "/"
	}
	if path != "/" {
		p += path
	}

	return &Route{
		server:     r.server,
		path:       p,
		middleware: slices.Clone(r.middleware),
	}
}

// Path returns the current route path.
func (r *Route) Path() string {
	return r.path
}

// With applies middleware to endpoints registered through this Route, or
// Routes derived from it, from this point forward. Already registered
// endpoints are unaffected.
func (r *Route) With(middleware ...Middleware) *Route {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// ResetMiddleware clears the middleware accumulated on this Route. It does
// not undo registrations already made, nor ancestors' accumulations.
func (r *Route) ResetMiddleware() *Route {
	r.middleware = nil
	return r
}

// Method registers ep for the given HTTP method at the current path,
// wrapped in the middleware accumulated so far.
func (r *Route) Method(method string, ep Endpoint) *Route {
	r.server.mustConfigure("register routes")
	r.server.router.add(method, r.path, wrapMiddleware(ep, slices.Clone(r.middleware)))
	return r
}

// All registers ep at the current path for every HTTP method, as a
// fallback. Routes registered for specific methods are tried first.
func (r *Route) All(ep Endpoint) *Route {
	r.server.mustConfigure("register routes")
	r.server.router.addAll(r.path, wrapMiddleware(ep, slices.Clone(r.middleware)))
	return r
}

// Get registers ep for GET requests.
func (r *Route) Get(ep Endpoint) *Route { return r.Method(http.MethodGet, ep) }

// Head registers ep for HEAD requests.
func (r *Route) Head(ep Endpoint) *Route { return r.Method(http.MethodHead, ep) }

// Put registers ep for PUT requests.
func (r *Route) Put(ep Endpoint) *Route { return r.Method(http.MethodPut, ep) }

// Post registers ep for POST requests.
func (r *Route) Post(ep Endpoint) *Route { return r.Method(http.MethodPost, ep) }

// Delete registers ep for DELETE requests.
func (r *Route) Delete(ep Endpoint) *Route { return r.Method(http.MethodDelete, ep) }

// Options registers ep for OPTIONS requests.
func (r *Route) Options(ep Endpoint) *Route { return r.Method(http.MethodOptions, ep) }

// Connect registers ep for CONNECT requests.
func (r *Route) Connect(ep Endpoint) *Route { return r.Method(http.MethodConnect, ep) }

// Patch registers ep for PATCH requests.
func (r *Route) Patch(ep Endpoint) *Route { return r.Method(http.MethodPatch, ep) }

// Trace registers ep for TRACE requests.
func (r *Route) Trace(ep Endpoint) *Route { return r.Method(http.MethodTrace, ep) }

// Nest mounts sub under the current path. The sub-dispatcher is registered
// as an all-methods catch-all at the current path plus "/*", behind an
// adapter that strips the mount prefix from the request path, so the
// sub-dispatcher routes as if it were mounted at "/".
//
// The outer server always wins when both could match the same literal
// path, because exact patterns beat catch-all wildcards.
func (r *Route) Nest(sub *Server) *Route {
	r.server.mustConfigure("register routes")

	wildcard := r.At("*")
	r.server.router.addAll(wildcard.path, wrapMiddleware(stripPrefix(sub), wildcard.middleware))
	return r
}

// stripPrefix rewrites the in-flight request path to the wildcard
// remainder captured by the innermost routing pass before invoking ep.
func stripPrefix(ep Endpoint) Endpoint {
	return EndpointFunc(func(c *Context) error {
		rest, _ := c.Wildcard()
		c.Request().SetPath(rest)
		return ep.Serve(c)
	})
}
