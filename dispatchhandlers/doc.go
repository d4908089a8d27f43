// Package dispatchhandlers provides middleware for the dispatch core.
//
// # Logger Middleware
//
// LoggerMiddleware emits a structured log line per dispatched request with
// the method, path, response status, and handler duration. Server errors
// log at error level and client errors at warn level.
//
//	s.With(dispatchhandlers.LoggerMiddleware(dispatchhandlers.LoggerConfig{
//	    Logger: slog.Default(),
//	}))
//
// # Recovery Middleware
//
// RecoveryMiddleware recovers from panics in downstream handlers, returning
// 500 Internal Server Error to the client instead of tearing down the
// dispatch.
//
//	s.With(dispatchhandlers.RecoveryMiddleware(dispatchhandlers.RecoveryConfig{}))
//
// # Request ID Middleware
//
// RequestIDMiddleware generates or propagates a request ID header and makes
// the ID available to downstream handlers through the Context store:
//
//	s.With(dispatchhandlers.RequestIDMiddleware(dispatchhandlers.RequestIDConfig{}))
//
//	s.At("/work").Get(dispatch.EndpointFunc(func(c *dispatch.Context) error {
//	    id, _ := dispatch.Get[dispatchhandlers.RequestID](c)
//	    ...
//	}))
//
// # Basic Auth Middleware
//
// BasicAuthMiddleware implements HTTP Basic Authentication per RFC 7617.
// Credentials can be validated via a dynamic callback or a static map.
// Static credential comparison uses constant-time comparison to prevent
// timing attacks.
//
//	mw, err := dispatchhandlers.BasicAuthMiddleware(dispatchhandlers.BasicAuthConfig{
//	    Realm: "My App",
//	    Credentials: map[string]string{
//	        "admin": "secret",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s.With(mw)
package dispatchhandlers
