package dispatch

import (
	"fmt"
	"net/http"
)

// router is the routing table owned by a Server: one pattern collection
// per concrete HTTP method, plus an all-methods collection used as a
// low-priority fallback. It is populated while the Server is configuring
// and read lock-free once serving begins.
type router struct {
	methods map[string]*patternSet
	all     patternSet
}

func newRouter() *router {
	return &router{
		methods: make(map[string]*patternSet),
	}
}

// selection is the result of routing: an endpoint plus the captures its
// pattern extracted. Routing misses select synthetic 404/405 endpoints
// rather than failing.
type selection struct {
	endpoint Endpoint
	captures Captures
}

func (r *router) add(method, pattern string, ep Endpoint) {
	set, ok := r.methods[method]
	if !ok {
		set = &patternSet{}
		r.methods[method] = set
	}
	set.add(pattern, ep)
}

func (r *router) addAll(pattern string, ep Endpoint) {
	r.all.add(pattern, ep)
}

// route resolves a path and method to an endpoint. The resolution order
// is fixed: the method-specific table, then the all-methods table, then a
// HEAD request retries as GET, then 405 when a different method's table
// matches the path, then 404. This ordering produces standards-correct
// status codes for the "wrong verb" and "unknown resource" cases.
func (r *router) route(path, method string) selection {
	if set, ok := r.methods[method]; ok {
		if ep, caps, ok := set.bestMatch(path); ok {
			return selection{endpoint: ep, captures: caps}
		}
	}

	if ep, caps, ok := r.all.bestMatch(path); ok {
		return selection{endpoint: ep, captures: caps}
	}

	// HEAD transparently reuses GET handlers when no HEAD handler exists.
	if method == http.MethodHead {
		return r.route(path, http.MethodGet)
	}

	for m, set := range r.methods {
		if m == method {
			continue
		}
		if _, _, ok := set.bestMatch(path); ok {
			return selection{endpoint: methodNotAllowedEndpoint}
		}
	}

	return selection{endpoint: notFoundEndpoint}
}

// patternSet holds the compiled patterns of one routing table. Lookup is
// a linear scan keeping the most specific match; tables are small and
// frozen before serving, so the scan stays contention-free.
type patternSet struct {
	entries []routeEntry
	shapes  map[string]string
}

type routeEntry struct {
	pattern  *Pattern
	endpoint Endpoint
}

// add compiles and inserts a pattern. Malformed patterns and patterns
// whose shape collides with an already registered one are programmer
// errors surfaced immediately, never deferred to request time.
func (ps *patternSet) add(pattern string, ep Endpoint) {
	pat, err := Compile(pattern)
	if err != nil {
		panic(err)
	}

	if ps.shapes == nil {
		ps.shapes = make(map[string]string)
	}
	if prev, ok := ps.shapes[pat.shape()]; ok {
		panic(fmt.Sprintf("dispatch: pattern %q is ambiguous with already registered %q", pattern, prev))
	}
	ps.shapes[pat.shape()] = pattern

	ps.entries = append(ps.entries, routeEntry{pattern: pat, endpoint: ep})
}

func (ps *patternSet) bestMatch(path string) (Endpoint, Captures, bool) {
	var (
		best     *Pattern
		bestEp   Endpoint
		bestCaps Captures
	)

	for _, e := range ps.entries {
		caps, ok := e.pattern.Match(path)
		if !ok {
			continue
		}
		if best == nil || moreSpecific(e.pattern, best) {
			best, bestEp, bestCaps = e.pattern, e.endpoint, caps
		}
	}

	return bestEp, bestCaps, best != nil
}

var notFoundEndpoint Endpoint = EndpointFunc(func(c *Context) error {
	c.Response().Text(http.StatusNotFound, "Not Found")
	return nil
})

var methodNotAllowedEndpoint Endpoint = EndpointFunc(func(c *Context) error {
	c.Response().Text(http.StatusMethodNotAllowed, "Method Not Allowed")
	return nil
})
