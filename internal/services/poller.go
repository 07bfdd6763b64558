package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
)

// FetchFunc produces one polled value.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Poller calls fetch at most once per interval.
type Poller[T any] struct {
	fetch   FetchFunc[T]
	limiter *rate.Limiter
}

// NewPoller creates a Poller. The first fetch happens immediately.
func NewPoller[T any](interval time.Duration, fetch FetchFunc[T]) *Poller[T] {
	return &Poller[T]{
		fetch:   fetch,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// NewHandle returns the owner's controls.
func (p *Poller[T]) NewHandle(tok *cancel.Token) *PollHandle {
	return &PollHandle{limiter: p.limiter, tok: tok}
}

// Run waits for the limiter, then fetches.
func (p *Poller[T]) Run(ctx context.Context) (cancellable.Result[T], error) {
	if err := p.limiter.Wait(ctx); err != nil {
		// The only other failure is a deadline that expires before the
		// next slot; nothing can be fetched until then.
		<-ctx.Done()
		return cancellable.Cancelled[T](), nil
	}

	v, err := p.fetch(ctx)
	if err != nil {
		return cancellable.Result[T]{}, err
	}
	return cancellable.Item(v), nil
}

// PollHandle lets the owner retune or stop a running Poller.
type PollHandle struct {
	limiter *rate.Limiter
	tok     *cancel.Token
}

// SetInterval changes the polling period. It applies from the next wait.
func (h *PollHandle) SetInterval(d time.Duration) {
	h.limiter.SetLimit(rate.Every(d))
}

// Interval returns the current polling period.
func (h *PollHandle) Interval() time.Duration {
	return time.Duration(float64(time.Second) / float64(h.limiter.Limit()))
}

// Cancel stops the poller.
func (h *PollHandle) Cancel() {
	h.tok.Cancel()
}
