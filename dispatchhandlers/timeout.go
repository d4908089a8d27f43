package dispatchhandlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vitalvas/courier/dispatch"
)

// ErrInvalidTimeout is returned when TimeoutConfig.Duration is not greater
// than zero.
var ErrInvalidTimeout = errors.New("timeout: duration must be greater than zero")

// TimeoutConfig configures the Timeout middleware behaviour.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for the handler to complete.
	// Must be greater than zero.
	Duration time.Duration

	// Message is the response body returned when the handler times out.
	// Defaults to the 503 status text when empty.
	Message string
}

// TimeoutMiddleware returns a middleware that limits handler execution time.
// It installs a deadline on the request's cancellation context and runs the
// rest of the chain against a detached response. When the chain completes
// in time its response is copied through; when the deadline fires first the
// client gets 503 Service Unavailable, and a handler that ignores the
// deadline keeps running against the detached response, where its writes
// are discarded. Handlers doing blocking work should honor c.Context()
// cancellation so they stop instead of running on.
//
// It returns ErrInvalidTimeout if Duration is not greater than zero.
func TimeoutMiddleware(cfg TimeoutConfig) (dispatch.MiddlewareFunc, error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidTimeout
	}

	duration := cfg.Duration
	message := cfg.Message
	if message == "" {
		message = http.StatusText(http.StatusServiceUnavailable)
	}

	return func(c *dispatch.Context, next dispatch.Next) error {
		ctx, cancel := context.WithTimeout(c.Context(), duration)
		defer cancel()

		c.SetContext(ctx)
		inner := c.Detach()

		done := make(chan error, 1)
		go func() {
			done <- next.Run(inner)
		}()

		select {
		case err := <-done:
			// A handler that surfaces the expired deadline as its error
			// gets the timeout response, not a 500, even when this branch
			// wins the select.
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
				c.Response().Text(http.StatusServiceUnavailable, message)
				return nil
			}
			if err != nil {
				return err
			}
			c.Response().Copy(inner.Response())
			return nil
		case <-ctx.Done():
			c.Response().Text(http.StatusServiceUnavailable, message)
			return nil
		}
	}, nil
}
