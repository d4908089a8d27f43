package listen

import (
	"crypto/tls"
	"log/slog"
)

type options struct {
	tlsConfig *tls.Config
	maxConns  int
	logger    *slog.Logger
}

// Option configures a TCP or Unix listener.
type Option func(*options)

// WithTLSConfig makes the listener terminate TLS with the given
// configuration.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = cfg
	}
}

// WithMaxConns caps the number of simultaneously accepted connections.
// Further connections queue in the kernel backlog until a slot frees up.
// Zero means unlimited.
func WithMaxConns(n int) Option {
	return func(o *options) {
		o.maxConns = n
	}
}

// WithLogger overrides the structured logger used for listener lifecycle
// messages. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
