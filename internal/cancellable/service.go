// Package cancellable drives long-running services that a separate party
// can stop gracefully.
//
// A Service performs one unit of work per Run call and yields either an
// item or notice of cancellation. The driver (Spawn, All) calls Run in a
// loop, hands each item to a consumer in order, and stops for good once
// the shared cancel.Token fires, the service reports Cancelled, or Run
// fails. Cancellation is a clean exit; only service failures surface as
// errors.
//
//	tok := cancel.New()
//	h := cancellable.Spawn[int, struct{}](ctx, svc, tok, cancellable.ChanSink(out))
//	...
//	h.Cancel()
//	if err := h.Wait(); err != nil { ... }
package cancellable

import (
	"context"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
)

// Service is the contract a cancellable background service implements.
//
// T is the item produced per unit of work and H the handle given to the
// owner of the running service.
type Service[T, H any] interface {
	// NewHandle is called exactly once, before the first Run. It receives
	// the shared token; a service that needs to stop itself may keep it.
	NewHandle(tok *cancel.Token) H

	// Run performs one unit of work. ctx is cancelled when the token fires
	// or the driver's context ends, and blocking operations must race
	// against it. Once that happens Run should return Cancelled, or an
	// error wrapping ctx.Err(), which the driver also treats as a clean
	// stop. Any other error is fatal to the loop.
	Run(ctx context.Context) (Result[T], error)
}

// Func adapts a plain function into a Service with no handle.
type Func[T any] func(ctx context.Context) (Result[T], error)

// NewHandle returns an empty handle.
func (f Func[T]) NewHandle(*cancel.Token) struct{} {
	return struct{}{}
}

// Run calls f.
func (f Func[T]) Run(ctx context.Context) (Result[T], error) {
	return f(ctx)
}
