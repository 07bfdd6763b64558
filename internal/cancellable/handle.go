package cancellable

import (
	"context"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
)

// Handle is the owner's view of a spawned service: the service-defined
// handle, the right to cancel, and the join.
type Handle[T, H any] struct {
	d     *driver[T, H]
	inner H
	done  chan struct{}
	err   error
}

// Spawn calls svc.NewHandle, then runs the loop on a new goroutine,
// delivering items to sink (nil discards them).
//
// ctx bounds the whole run, including delivery of an item produced
// before the token fired; cancelling it is the hard stop. tok is the
// graceful stop.
func Spawn[T, H any](ctx context.Context, svc Service[T, H], tok *cancel.Token, sink Sink[T], opts ...Option) *Handle[T, H] {
	if sink == nil {
		sink = Discard[T]()
	}
	d := newDriver(svc, tok, opts)
	h := &Handle[T, H]{
		d:    d,
		done: make(chan struct{}),
	}
	h.inner = d.start()

	deliver := func(ctx context.Context, v T) error {
		return protect(func() error { return sink.Deliver(ctx, v) })
	}
	go func() {
		defer close(h.done)
		h.err = d.loop(ctx, deliver)
	}()
	return h
}

// Inner returns the handle produced by the service's NewHandle.
func (h *Handle[T, H]) Inner() H {
	return h.inner
}

// Token returns the token the service observes.
func (h *Handle[T, H]) Token() *cancel.Token {
	return h.d.tok
}

// Cancel fires the token. It does not wait for the loop to exit.
func (h *Handle[T, H]) Cancel() {
	h.d.tok.Cancel()
}

// Done returns a channel closed once the loop has exited and the service
// has been torn down.
func (h *Handle[T, H]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the loop exits. It returns nil after a clean
// cancellation and the unmodified service or sink error after a failure.
//
// Wait does not cancel anything: the caller must fire the token unless
// the service is known to stop on its own.
func (h *Handle[T, H]) Wait() error {
	<-h.done
	return h.err
}

// State returns the driver's current state.
func (h *Handle[T, H]) State() State {
	return h.d.state.load()
}

// Stats returns the driver's counters.
func (h *Handle[T, H]) Stats() Stats {
	return h.d.stats()
}

// ID returns the driver id used in logs.
func (h *Handle[T, H]) ID() string {
	return h.d.id
}
