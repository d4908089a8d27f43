// Package listen provides network transports that serve a dispatch.Server
// over TCP and Unix domain sockets. Listeners follow a two-phase lifecycle:
// Bind acquires the socket and Accept blocks serving connections, so a
// caller can bind early, report the bound addresses, and only then start
// accepting.
package listen

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/vitalvas/courier/dispatch"
)

// ErrNotBound is returned by Accept and Shutdown when Bind has not been
// called, or did not succeed.
var ErrNotBound = errors.New("listen: listener is not bound")

// Listener serves a dispatcher over some transport.
type Listener interface {
	// Bind acquires the transport resources, such as the network socket.
	Bind(s *dispatch.Server) error

	// Accept blocks serving connections until Shutdown is called or the
	// transport fails. Bind must have succeeded first.
	Accept() error

	// Info describes the bound sockets. Empty before Bind.
	Info() []Info

	// Shutdown gracefully stops the listener, waiting for in-flight
	// requests up to the context deadline.
	Shutdown(ctx context.Context) error
}

// Info describes one bound socket of a listener.
type Info struct {
	// Conn is the connection string, such as an ip:port pair or a
	// socket path.
	Conn string

	// Transport is the transport protocol, "tcp" or "unix".
	Transport string

	// TLS reports whether the listener terminates TLS.
	TLS bool
}

func (i Info) String() string {
	// Unix sockets never carry TLS, so three forms cover every listener.
	switch {
	case i.Transport == "unix":
		return "http+unix://" + i.Conn
	case i.TLS:
		return "https://" + i.Conn
	default:
		return "http://" + i.Conn
	}
}

// Serve binds all listeners to s and accepts on them concurrently,
// returning the first error. It is a convenience wrapper around
// Concurrent.
func Serve(s *dispatch.Server, listeners ...Listener) error {
	l := Concurrent(listeners...)
	if err := l.Bind(s); err != nil {
		return err
	}
	return l.Accept()
}

// isTransient reports whether an accept error is worth retrying. Covers
// peers that reset during the handshake and temporary descriptor
// exhaustion.
func isTransient(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// retryListener retries transient accept errors with exponential backoff
// instead of surfacing them, so a burst of handshake resets does not take
// the whole listener down.
type retryListener struct {
	net.Listener
	logger *slog.Logger
}

func (l *retryListener) Accept() (net.Conn, error) {
	delay := 5 * time.Millisecond
	const maxDelay = time.Second

	for {
		conn, err := l.Listener.Accept()
		if err == nil {
			return conn, nil
		}
		if !isTransient(err) {
			return nil, err
		}

		l.logger.Warn("transient accept error, retrying",
			slog.String("error", err.Error()),
			slog.Duration("delay", delay))

		time.Sleep(delay)
		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}
	}
}
