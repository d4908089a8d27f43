package dispatchhandlers

import (
	"github.com/google/uuid"
	"github.com/vitalvas/courier/dispatch"
)

// RequestID is the per-request identifier stored in the Context by
// RequestIDMiddleware. Downstream handlers retrieve it with
// dispatch.Get[RequestID](c).
type RequestID string

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the current request, allowing ID generation based on
	// request attributes. Defaults to GenerateUUIDv4.
	GenerateFunc func(r *dispatch.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestIDMiddleware returns a middleware that generates or propagates a
// request ID header. The ID is set on the response header (for the caller)
// and stored in the Context (for downstream handlers and middleware).
func RequestIDMiddleware(cfg RequestIDConfig) dispatch.MiddlewareFunc {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(c *dispatch.Context, next dispatch.Next) error {
		id := ""
		if trustIncoming {
			id = c.Header(headerName)
		}

		if id == "" {
			id = generate(c.Request())
		}

		if id != "" {
			c.Response().Header().Set(headerName, id)
			dispatch.Set(c, RequestID(id))
		}

		return next.Run(c)
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *dispatch.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *dispatch.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
