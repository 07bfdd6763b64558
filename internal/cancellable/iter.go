package cancellable

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
)

// All runs svc in the caller's goroutine as a range-over-func sequence.
//
// NewHandle is called before All returns. Ranging the sequence runs the
// loop: each item is yielded as (v, nil) and a failure as a final
// (zero, err). Breaking out stops the loop without another Run call. The
// sequence runs once; ranging it again yields nothing.
//
// Teardown, including the service's Close, runs when the range ends. A
// sequence that is never ranged never tears down: a service holding
// resources, such as a Listener's socket, must then be closed by the
// caller.
//
//	h, items := cancellable.All[int, *Conn](ctx, svc, tok)
//	for v, err := range items { ... }
func All[T, H any](ctx context.Context, svc Service[T, H], tok *cancel.Token, opts ...Option) (H, iter.Seq2[T, error]) {
	d := newDriver(svc, tok, opts)
	h := d.start()

	var used atomic.Bool
	seq := func(yield func(T, error) bool) {
		if !used.CompareAndSwap(false, true) {
			return
		}
		err := d.loop(ctx, func(_ context.Context, v T) error {
			if !yield(v, nil) {
				return ErrSinkClosed
			}
			return nil
		})
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
	return h, seq
}
