package dispatchhandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalvas/courier/dispatch"
)

// LoggerConfig configures the Logger middleware behaviour.
type LoggerConfig struct {
	// Logger is the structured logger to emit to. Defaults to slog.Default
	// when nil.
	Logger *slog.Logger
}

// LoggerMiddleware returns a middleware that logs one line per dispatched
// request, carrying the method, path, response status, and handler duration.
// Responses with a 5xx status log at error level, 4xx at warn level, and
// everything else at info level. Handler errors are logged and passed
// through unchanged, so the dispatcher still converts them into responses.
func LoggerMiddleware(cfg LoggerConfig) dispatch.MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *dispatch.Context, next dispatch.Next) error {
		start := time.Now()
		err := next.Run(c)

		status := c.Response().Status()
		if err != nil {
			status = dispatch.StatusOf(err)
		}

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorContext(c.Context(), "request failed", attrs...)
		case status >= http.StatusBadRequest:
			logger.WarnContext(c.Context(), "request rejected", attrs...)
		default:
			logger.InfoContext(c.Context(), "request served", attrs...)
		}

		return err
	}
}
