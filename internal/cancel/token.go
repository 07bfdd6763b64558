package cancel

import (
	"context"
	"sync/atomic"
)

// Token is a monotonic cancellation flag. Once fired it stays fired.
type Token struct {
	ctx    context.Context
	cancel context.CancelFunc
	fired  atomic.Bool
}

var _ Signal = (*Token)(nil)

// New creates a Token that fires only when Cancel is called.
func New() *Token {
	return FromContext(context.Background())
}

// Cancel fires the token. Firing an already fired token is a no-op.
func (t *Token) Cancel() {
	t.fired.Store(true)
	t.cancel()
}

// IsCancelled reports whether the token has fired.
//
// The common case is a single atomic load. A token fired through its
// parent is detected with a non-blocking receive and latched.
func (t *Token) IsCancelled() bool {
	if t.fired.Load() {
		return true
	}
	select {
	case <-t.ctx.Done():
		t.fired.Store(true)
		return true
	default:
		return false
	}
}

// Cancelled returns a channel closed when the token fires.
func (t *Token) Cancelled() <-chan struct{} {
	return t.ctx.Done()
}

// Wait blocks until the token fires or ctx is done. It returns nil when
// the token fired, ctx.Err() otherwise. A fired token wins over a done ctx.
func (t *Token) Wait(ctx context.Context) error {
	if t.IsCancelled() {
		return nil
	}
	select {
	case <-t.ctx.Done():
		return nil
	case <-ctx.Done():
		if t.IsCancelled() {
			return nil
		}
		return ctx.Err()
	}
}

// Context returns a context cancelled when the token fires.
// Pass it to blocking calls that must be abortable by this token.
func (t *Token) Context() context.Context {
	return t.ctx
}

// Child returns a token fired whenever t fires. Cancelling the child
// leaves t untouched.
func (t *Token) Child() *Token {
	return FromContext(t.ctx)
}
