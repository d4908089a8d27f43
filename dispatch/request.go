package dispatch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request is the already-parsed incoming request a transport hands to the
// core. The core only reads the method and path for routing; headers and
// the streaming body pass through opaquely to handlers and middleware.
type Request struct {
	// Method is the HTTP method token, e.g. "GET".
	Method string

	// URL is the request target. Only Path participates in routing.
	URL *url.URL

	// Header holds the request header fields.
	Header http.Header

	// Body is the request payload stream. May be nil.
	Body io.Reader

	// RemoteAddr is the network address of the peer, when the transport
	// provides one.
	RemoteAddr string
}

// NewRequest builds a request from a method and target URL. It panics if
// the target cannot be parsed, mirroring httptest.NewRequest; it is meant
// for tests and trusted callers, while transports use FromHTTP.
func NewRequest(method, target string, body io.Reader) *Request {
	u, err := url.Parse(target)
	if err != nil {
		panic(fmt.Sprintf("dispatch: invalid request target %q: %v", target, err))
	}

	return &Request{
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   body,
	}
}

// FromHTTP adapts a net/http request for dispatch. The URL, header, and
// body are shared with the original request, not copied.
func FromHTTP(r *http.Request) *Request {
	return &Request{
		Method:     r.Method,
		URL:        r.URL,
		Header:     r.Header,
		Body:       r.Body,
		RemoteAddr: r.RemoteAddr,
	}
}

// Path returns the request path used for routing, never empty.
func (r *Request) Path() string {
	if r.URL == nil || r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}

// SetPath rewrites the request path, forcing a leading slash. The
// prefix-stripping adapter uses this to let a nested dispatcher route as
// if it were mounted at the root.
func (r *Request) SetPath(p string) {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if r.URL == nil {
		r.URL = &url.URL{}
	}
	r.URL.Path = p
}
