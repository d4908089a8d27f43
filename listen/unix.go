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

// UnixListener serves a dispatcher over a Unix domain socket.
type UnixListener struct {
	path string
	opts options

	listener net.Listener
	server   *http.Server
	info     Info
}

// Unix returns a listener for the given socket path. The socket file is
// removed when the listener shuts down.
func Unix(path string, opts ...Option) *UnixListener {
	return &UnixListener{
		path: path,
		opts: applyOptions(opts),
	}
}

// Bind creates the socket file and prepares the HTTP server around s.
func (l *UnixListener) Bind(s *dispatch.Server) error {
	ln, err := net.Listen("unix", l.path)
	if err != nil {
		return err
	}

	if l.opts.maxConns > 0 {
		ln = netutil.LimitListener(ln, l.opts.maxConns)
	}
	ln = &retryListener{Listener: ln, logger: l.opts.logger}

	l.listener = ln
	l.server = &http.Server{Handler: s}
	l.info = Info{
		Conn:      l.path,
		Transport: "unix",
	}

	return nil
}

// Accept serves connections until Shutdown. A graceful shutdown returns
// nil.
func (l *UnixListener) Accept() error {
	if l.server == nil {
		return ErrNotBound
	}

	l.opts.logger.Info("listening", slog.String("addr", l.info.String()))

	if err := l.server.Serve(l.listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (l *UnixListener) Info() []Info {
	if l.server == nil {
		return nil
	}
	return []Info{l.info}
}

func (l *UnixListener) Shutdown(ctx context.Context) error {
	if l.server == nil {
		return ErrNotBound
	}
	return l.server.Shutdown(ctx)
}
