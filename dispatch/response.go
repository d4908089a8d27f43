package dispatch

import (
	"bytes"
	"net/http"
)

// Response is the in-progress response value owned by a Context. Handlers
// and middleware build it up during a dispatch; the transport consumes it
// once the chain returns. The body is buffered, so middleware running
// after next.Run can still replace status, headers, and body.
type Response struct {
	status int
	header http.Header
	body   bytes.Buffer
}

// NewResponse returns an empty response with status 200 OK.
func NewResponse() *Response {
	return &Response{
		status: http.StatusOK,
		header: make(http.Header),
	}
}

// Status returns the response status code.
func (r *Response) Status() int {
	return r.status
}

// SetStatus sets the response status code.
func (r *Response) SetStatus(code int) {
	r.status = code
}

// Header returns the response header map for reading and modification.
func (r *Response) Header() http.Header {
	return r.header
}

// Write appends p to the response body. It never fails.
func (r *Response) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// WriteString appends s to the response body. It never fails.
func (r *Response) WriteString(s string) (int, error) {
	return r.body.WriteString(s)
}

// Text replaces any accumulated body with the given plain text and sets
// the status code.
func (r *Response) Text(status int, body string) {
	r.status = status
	r.body.Reset()
	r.body.WriteString(body)
}

// Body returns the accumulated response body.
func (r *Response) Body() []byte {
	return r.body.Bytes()
}

// BodyString returns the accumulated response body as a string.
func (r *Response) BodyString() string {
	return r.body.String()
}

// Copy replaces the response's status, header, and body with src's. The
// header is cloned, so later mutation of src does not leak through.
func (r *Response) Copy(src *Response) {
	r.status = src.status
	r.header = src.header.Clone()
	r.body.Reset()
	r.body.Write(src.body.Bytes())
}

// WriteHTTP writes the response to a net/http ResponseWriter. It returns
// the body write error, if any; by that point the status and headers are
// already on the wire, so the caller can do no more than log it.
func (r *Response) WriteHTTP(w http.ResponseWriter) error {
	h := w.Header()
	for name, values := range r.header {
		h[name] = values
	}

	w.WriteHeader(r.status)
	_, err := w.Write(r.body.Bytes())
	return err
}
