package listen

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/vitalvas/courier/dispatch"
)

// ConcurrentListener fans one dispatcher out over several transports, for
// example a TCP port and a Unix socket at once.
type ConcurrentListener struct {
	listeners []Listener
}

// Concurrent combines listeners into one. Bind and Shutdown apply to all
// of them; Accept serves all of them concurrently.
func Concurrent(listeners ...Listener) *ConcurrentListener {
	return &ConcurrentListener{listeners: listeners}
}

// Add appends another listener. Must be called before Bind.
func (l *ConcurrentListener) Add(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

// Bind binds every listener, stopping at the first failure.
func (l *ConcurrentListener) Bind(s *dispatch.Server) error {
	for _, listener := range l.listeners {
		if err := listener.Bind(s); err != nil {
			return err
		}
	}
	return nil
}

// Accept serves all listeners until one fails or all shut down. The first
// accept error is returned.
func (l *ConcurrentListener) Accept() error {
	var g errgroup.Group
	for _, listener := range l.listeners {
		g.Go(listener.Accept)
	}
	return g.Wait()
}

func (l *ConcurrentListener) Info() []Info {
	var infos []Info
	for _, listener := range l.listeners {
		infos = append(infos, listener.Info()...)
	}
	return infos
}

// Shutdown stops every listener, collecting their errors.
func (l *ConcurrentListener) Shutdown(ctx context.Context) error {
	var errs []error
	for _, listener := range l.listeners {
		if err := listener.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
