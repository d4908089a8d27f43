package dispatch

import (
	"context"
	"net/http"
	"sync/atomic"
)

// Server is the top-level dispatcher. It owns the routing table and the
// global middleware list, and exposes a single Dispatch entry point used
// both for direct testing and for every accepted connection.
//
// A Server moves through two states. While configuring, At and With may
// add routes and middleware. The first Dispatch (or Serve) freezes the
// server: the routing table and middleware list become read-only and are
// shared across all concurrent requests without locking, which is only
// sound because further mutation is rejected. Registering after the
// transition is a programmer error and panics.
type Server struct {
	router     *router
	middleware []Middleware
	serving    atomic.Bool
}

// New creates an empty Server.
func New() *Server {
	return &Server{router: newRouter()}
}

// At starts a Route at the given path, relative to root.
//
// A path is zero or more non-empty segments separated by "/". A concrete
// segment matches the corresponding request segment exactly. A segment
// written ":name" captures one request segment under "name"; a bare ":"
// matches one segment without capturing. A final segment written "*" or
// "*name" matches everything left of the path, even nothing. Some
// examples:
//
//	app.At("/")
//	app.At("/hello")
//	app.At("/add_one/:num")
//	app.At("/files/:user/*")
//	app.At("/static/*path")
//
// There is no fallback matching: a resource either matches fully or not at
// all, so registration order has no effect on resolution.
func (s *Server) At(path string) *Route {
	s.mustConfigure("register routes")
	return newRoute(s, path)
}

// With appends middleware to the server-global chain, which wraps every
// dispatched request outside any route-level middleware. Middleware runs
// in the order it was added.
func (s *Server) With(middleware ...Middleware) *Server {
	s.mustConfigure("add middleware")
	s.middleware = append(s.middleware, middleware...)
	return s
}

func (s *Server) mustConfigure(action string) {
	if s.serving.Load() {
		panic("dispatch: cannot " + action + " after the server has started serving")
	}
}

// Dispatch resolves req to a handler, runs the middleware chain around it,
// and returns the finished response. An error escaping the chain is
// converted into a response carrying the error's status code and message;
// it never propagates to the caller.
//
// ctx carries cancellation from the transport. The first call transitions
// the server from configuring to serving.
func (s *Server) Dispatch(ctx context.Context, req *Request) *Response {
	c := newContext(ctx, req)
	if err := s.Serve(c); err != nil {
		c.res.Text(StatusOf(err), err.Error())
	}
	return c.res
}

// Serve implements Endpoint, routing the context's current request path
// through this server's table and middleware. This is what makes a Server
// nestable inside another via Route.Nest: the inner server pushes its own
// captures onto the context's stack and runs its own chain.
func (s *Server) Serve(c *Context) error {
	s.serving.Store(true)

	sel := s.router.route(c.req.Path(), c.req.Method)
	c.pushCaptures(sel.captures)

	return newNext(sel.endpoint, s.middleware).Run(c)
}

// ServeHTTP implements http.Handler, so any net/http transport can drive
// the dispatcher directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := s.Dispatch(r.Context(), FromHTTP(r))

	// The connection may be gone by the time the body is written;
	// there is nobody left to tell.
	_ = res.WriteHTTP(w)
}
