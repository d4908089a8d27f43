package dispatchhandlers

import (
	"net/http"

	"github.com/vitalvas/courier/dispatch"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the context and the
	// recovered value when a panic occurs. When nil, no logging is performed.
	LogFunc func(c *dispatch.Context, err any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers and middleware. When a panic occurs it returns 500
// Internal Server Error to the client and optionally invokes LogFunc.
func RecoveryMiddleware(cfg RecoveryConfig) dispatch.MiddlewareFunc {
	return func(c *dispatch.Context, next dispatch.Next) error {
		defer func() {
			if err := recover(); err != nil {
				if cfg.LogFunc != nil {
					cfg.LogFunc(c, err)
				}

				c.Response().Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()

		return next.Run(c)
	}
}
