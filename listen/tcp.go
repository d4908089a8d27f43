package listen

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"golang.org/x/net/netutil"

	"github.com/vitalvas/courier/dispatch"
)

// TCPListener serves a dispatcher over a TCP socket, optionally with TLS.
type TCPListener struct {
	addr string
	opts options

	listener net.Listener
	server   *http.Server
	info     Info
}

// TCP returns a listener for the given address, e.g. "127.0.0.1:8080" or
// ":0" for an ephemeral port.
func TCP(addr string, opts ...Option) *TCPListener {
	return &TCPListener{
		addr: addr,
		opts: applyOptions(opts),
	}
}

// Bind acquires the TCP socket and prepares the HTTP server around s.
func (l *TCPListener) Bind(s *dispatch.Server) error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return err
	}

	if l.opts.maxConns > 0 {
		ln = netutil.LimitListener(ln, l.opts.maxConns)
	}
	ln = &retryListener{Listener: ln, logger: l.opts.logger}

	l.listener = ln
	l.server = &http.Server{
		Handler:   s,
		TLSConfig: l.opts.tlsConfig,
	}
	l.info = Info{
		Conn:      ln.Addr().String(),
		Transport: "tcp",
		TLS:       l.opts.tlsConfig != nil,
	}

	return nil
}

// Accept serves connections until Shutdown. A graceful shutdown returns
// nil.
func (l *TCPListener) Accept() error {
	if l.server == nil {
		return ErrNotBound
	}

	l.opts.logger.Info("listening", slog.String("addr", l.info.String()))

	var err error
	if l.info.TLS {
		err = l.server.ServeTLS(l.listener, "", "")
	} else {
		err = l.server.Serve(l.listener)
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the bound address, or nil before Bind. Useful with ":0" to
// discover the chosen port.
func (l *TCPListener) Addr() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

func (l *TCPListener) Info() []Info {
	if l.server == nil {
		return nil
	}
	return []Info{l.info}
}

func (l *TCPListener) Shutdown(ctx context.Context) error {
	if l.server == nil {
		return ErrNotBound
	}
	return l.server.Shutdown(ctx)
}
