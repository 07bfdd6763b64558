package cancellable

import (
	"context"
	"time"

	"github.com/randomizedcoder/go-cancellable/internal/queue"
)

// Sink receives items from the driver, one at a time and in order.
//
// ctx is the driver's context, not the token's: an item produced before
// the token fired is still delivered. Returning ErrSinkClosed stops the
// loop cleanly; any other error fails it.
type Sink[T any] interface {
	Deliver(ctx context.Context, v T) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc[T any] func(ctx context.Context, v T) error

// Deliver calls f.
func (f SinkFunc[T]) Deliver(ctx context.Context, v T) error {
	return f(ctx, v)
}

// Discard returns a Sink that drops every item.
func Discard[T any]() Sink[T] {
	return SinkFunc[T](func(context.Context, T) error { return nil })
}

// ChanSink sends each item on ch, blocking until it is received or ctx is
// done. ch must not be closed while the driver is running.
func ChanSink[T any](ch chan<- T) Sink[T] {
	return SinkFunc[T](func(ctx context.Context, v T) error {
		select {
		case ch <- v:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

const (
	minQueuePause = 50 * time.Microsecond
	maxQueuePause = 10 * time.Millisecond
)

// QueueSink pushes each item into q. While q is full it retries with
// doubling pauses, capped at 10ms, until ctx is done.
func QueueSink[T any](q queue.Pusher[T]) Sink[T] {
	return SinkFunc[T](func(ctx context.Context, v T) error {
		if q.Push(v) {
			return nil
		}

		pause := minQueuePause
		timer := time.NewTimer(pause)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
			if q.Push(v) {
				return nil
			}
			pause = min(pause*2, maxQueuePause)
			timer.Reset(pause)
		}
	})
}
