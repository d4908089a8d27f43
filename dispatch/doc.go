// Package dispatch implements an embeddable HTTP request-dispatch core:
// given a parsed request, it selects a registered endpoint, runs a chain of
// middleware around it, and produces a response value.
//
// The package deliberately stops at the dispatch boundary. Wire parsing,
// TLS termination, and connection handling belong to a transport; a Server
// implements http.Handler so any net/http-based transport (see the listen
// package) can drive it, and Dispatch can be called directly in tests.
//
// # Routing
//
// Create a server and register endpoints per path and method:
//
//	app := dispatch.New()
//	app.At("/hello").Get(dispatch.EndpointFunc(func(c *dispatch.Context) error {
//	    c.Response().WriteString("world")
//	    return nil
//	}))
//
// Paths are sequences of segments. ":name" captures one segment, ":"
// matches one segment without capturing, and a final "*" or "*name"
// matches the whole remainder of the path:
//
//	app.At("/add_one/:num").Get(addOne)
//	app.At("/files/:user/*").Get(files)
//
// When several patterns match one request, the most specific wins: literal
// segments beat captures, captures beat wildcards, and a pattern without a
// wildcard beats one with. Resolution never depends on registration order.
// Registering two patterns of identical shape in the same table panics, as
// does registering a malformed pattern; configuration errors surface at
// registration time, never at request time.
//
// A request whose path matches no pattern produces 404. A path that only
// matches under a different method produces 405. A HEAD request reuses the
// GET endpoint when no HEAD endpoint exists.
//
// # Parameters
//
// Endpoints read captures through the Context:
//
//	num, err := c.Param("num")   // ":num" binding; error if not bound
//	rest, ok := c.Wildcard()     // "*" remainder; ok reports presence
//
// # Middleware
//
// Middleware wraps the remainder of the chain and decides whether to pass
// control inward:
//
//	auth := dispatch.MiddlewareFunc(func(c *dispatch.Context, next dispatch.Next) error {
//	    if c.Header("X-Auth") != "secret" {
//	        c.Response().SetStatus(http.StatusUnauthorized)
//	        return nil // short-circuit
//	    }
//	    return next.Run(c)
//	})
//
//	app.With(auth)                       // global: wraps every request
//	app.At("/admin").With(auth).Get(ep)  // route-level: wraps one endpoint
//
// Global middleware wraps route middleware, which wraps the endpoint.
// Route middleware is fixed at registration: a Route snapshots its
// accumulation, so extending a builder later never rewires what is already
// registered.
//
// # Nesting
//
// A Server is itself an Endpoint, so one application can be mounted inside
// another. The mount prefix is stripped before the inner server routes:
//
//	inner := dispatch.New()
//	inner.At("/status").Get(status)
//	outer.At("/api").Nest(inner) // GET /api/status -> inner /status
//
// The outer server always wins when both could match the same literal
// path.
//
// # Typed store
//
// Each Context carries a store keyed by concrete type, holding at most one
// value per type, for passing data between middleware and endpoints:
//
//	dispatch.Set(c, User{Name: "anna"})
//	user, ok := dispatch.Get[User](c)
//	user, ok = dispatch.Take[User](c) // removes the value
//
// # Errors
//
// Endpoints and middleware report failures as errors. An *Error associates
// a status code; at the outermost dispatch boundary any escaping error
// becomes a response with that status (500 when the error carries none)
// and the error message as body. A failing handler never takes the
// connection or the process down with it.
//
//	return dispatch.Errorf(http.StatusBadRequest, "bad id %q", id)
package dispatch
