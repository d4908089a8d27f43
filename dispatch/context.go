package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"slices"
)

// Context is the mutable per-request state container. It carries the
// request, the in-progress response, the capture stack from routing, and a
// type-keyed store that lets middleware and handlers exchange values
// without a shared schema. One Context exists per in-flight dispatch and
// is never shared across requests.
type Context struct {
	ctx    context.Context
	req    *Request
	res    *Response
	params []Captures
	ext    map[reflect.Type]any
}

func newContext(ctx context.Context, req *Request) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		ctx: ctx,
		req: req,
		res: NewResponse(),
	}
}

// Context returns the cancellation context for this request. Handlers
// doing blocking work should honor it; the transport cancels it when the
// underlying connection is dropped.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Detach returns a child Context for the same request that writes to its
// own Response. The cancellation context, request, capture stack, and
// typed store are shared with the parent; the response is not.
//
// Middleware that may abandon a running chain, such as a timeout wrapper,
// runs the inner chain on a detached context: once the parent gives up, a
// late handler holds only the detached response and can no longer touch
// the one the transport will consume.
func (c *Context) Detach() *Context {
	if c.ext == nil {
		c.ext = make(map[reflect.Type]any)
	}
	return &Context{
		ctx: c.ctx,
		req: c.req,
		res: NewResponse(),
		// Clip so a nested routing pass in the child cannot grow into
		// the parent's backing array.
		params: slices.Clip(c.params),
		ext:    c.ext,
	}
}

// SetContext replaces the cancellation context for this request. Middleware
// uses this to impose deadlines or attach values for downstream handlers.
// A nil ctx is ignored.
func (c *Context) SetContext(ctx context.Context) {
	if ctx != nil {
		c.ctx = ctx
	}
}

// Request returns the request being dispatched.
func (c *Context) Request() *Request {
	return c.req
}

// Response returns the in-progress response.
func (c *Context) Response() *Response {
	return c.res
}

// Method returns the request's HTTP method.
func (c *Context) Method() string {
	return c.req.Method
}

// Path returns the request path.
func (c *Context) Path() string {
	return c.req.Path()
}

// Header returns the first value of the named request header.
func (c *Context) Header(name string) string {
	return c.req.Header.Get(name)
}

// Param returns the route parameter bound to name. The capture stack is
// searched innermost-first, so a nested dispatcher's binding shadows an
// outer one of the same name. The name should not include the leading ":".
//
// It returns an error wrapping ErrParamNotFound when no routing pass bound
// the name, which means the route pattern and the handler disagree.
func (c *Context) Param(name string) (string, error) {
	for i := len(c.params) - 1; i >= 0; i-- {
		if v, ok := c.params[i].Get(name); ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrParamNotFound, name)
}

// Wildcard returns the trailing wildcard remainder of the innermost
// routing pass whose pattern had one.
func (c *Context) Wildcard() (string, bool) {
	for i := len(c.params) - 1; i >= 0; i-- {
		if v, ok := c.params[i].Wildcard(); ok {
			return v, true
		}
	}
	return "", false
}

func (c *Context) pushCaptures(caps Captures) {
	c.params = append(c.params, caps)
}

// Set stores value in the Context keyed by its concrete type. At most one
// value per type exists at a time: storing a second value of the same type
// replaces the first and returns it. Values of different types never
// collide.
func Set[T any](c *Context, value T) (prev T, replaced bool) {
	key := typeKey[T]()
	if c.ext == nil {
		c.ext = make(map[reflect.Type]any)
	}
	if old, ok := c.ext[key]; ok {
		prev, replaced = old.(T), true
	}
	c.ext[key] = value
	return prev, replaced
}

// Get returns the value of type T stored in the Context, if any.
func Get[T any](c *Context) (T, bool) {
	var zero T
	v, ok := c.ext[typeKey[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Take removes and returns the value of type T stored in the Context,
// leaving no value of that type behind.
func Take[T any](c *Context) (T, bool) {
	var zero T
	key := typeKey[T]()
	v, ok := c.ext[key]
	if !ok {
		return zero, false
	}
	delete(c.ext, key)
	return v.(T), true
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
