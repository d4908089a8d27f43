package dispatch

// Endpoint is the terminal unit producing a response for a matched route.
// Endpoints write to the Context's response and return an error only for
// failures; routing misses are normal outcomes handled by the router.
//
// A Server implements Endpoint, so a whole dispatcher can be registered as
// the handler of another (see Route.Nest).
type Endpoint interface {
	Serve(c *Context) error
}

// EndpointFunc adapts a function to the Endpoint interface.
type EndpointFunc func(*Context) error

// Serve implements Endpoint.
func (f EndpointFunc) Serve(c *Context) error {
	return f(c)
}

// Middleware is a composable request/response interceptor wrapped around
// the remainder of a chain. A middleware may call next.Run zero times to
// short-circuit, or exactly once to pass control inward, optionally
// inspecting or mutating the response afterwards. Calling Run more than
// once from the same middleware is a misuse with undefined results.
type Middleware interface {
	Handle(c *Context, next Next) error
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(*Context, Next) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(c *Context, next Next) error {
	return f(c, next)
}

// Next is the remainder of a middleware chain, including the endpoint.
// The sequence and the endpoint are fixed for the duration of one request;
// Next values advance by copy, so the chain itself is never mutated and is
// safe to share across concurrent requests.
type Next struct {
	endpoint   Endpoint
	middleware []Middleware
	index      int
}

func newNext(ep Endpoint, middleware []Middleware) Next {
	return Next{endpoint: ep, middleware: middleware}
}

// Run passes control to the next middleware in the chain, or to the
// endpoint once the middleware are exhausted. Middleware registered
// earlier wraps middleware registered later.
func (n Next) Run(c *Context) error {
	if n.index < len(n.middleware) {
		current := n.middleware[n.index]
		n.index++
		return current.Handle(c, n)
	}
	return n.endpoint.Serve(c)
}

// middlewareEndpoint bakes a route's accumulated middleware around its
// endpoint at registration time. Server-global middleware is layered
// outside of this at dispatch time, so global middleware always wraps
// route middleware, which wraps the endpoint.
type middlewareEndpoint struct {
	endpoint   Endpoint
	middleware []Middleware
}

func wrapMiddleware(ep Endpoint, middleware []Middleware) Endpoint {
	if len(middleware) == 0 {
		return ep
	}
	return &middlewareEndpoint{endpoint: ep, middleware: middleware}
}

func (m *middlewareEndpoint) Serve(c *Context) error {
	return newNext(m.endpoint, m.middleware).Run(c)
}
