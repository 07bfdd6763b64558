// Package services holds ready-made cancellable services built on common
// blocking primitives: a TCP accept loop, a channel-fed transformer, a
// rate-paced poller and a filesystem watcher.
package services

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
)

// Listener yields one accepted connection per Run.
type Listener struct {
	ln net.Listener
}

var _ cancellable.Service[net.Conn, net.Addr] = (*Listener)(nil)

// NewListener binds network/addr, e.g. ("tcp", "127.0.0.1:0").
func NewListener(ctx context.Context, network, addr string) (*Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("services: listen %s %s: %w", network, addr, err)
	}
	return &Listener{ln: ln}, nil
}

// NewHandle returns the bound address.
func (l *Listener) NewHandle(*cancel.Token) net.Addr {
	return l.ln.Addr()
}

// Run blocks in Accept. Cancellation closes the listener, which aborts it.
func (l *Listener) Run(ctx context.Context) (cancellable.Result[net.Conn], error) {
	stop := context.AfterFunc(ctx, func() {
		_ = l.ln.Close()
	})
	defer stop()

	conn, err := l.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return cancellable.Cancelled[net.Conn](), nil
		}
		return cancellable.Result[net.Conn]{}, fmt.Errorf("services: accept: %w", err)
	}
	return cancellable.Item(conn), nil
}

// Close releases the socket. Closing twice is not an error.
func (l *Listener) Close() error {
	if err := l.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
