package cancellable_test

import (
	"context"
	"sync/atomic"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
)

// counter yields 1, 2, 3, ... and fires its own token once it has
// produced limit items. limit <= 0 means it never stops itself.
type counter struct {
	limit  int32
	tok    *cancel.Token
	runs   atomic.Int32
	closes atomic.Int32
}

func (c *counter) NewHandle(tok *cancel.Token) struct{} {
	c.tok = tok
	return struct{}{}
}

func (c *counter) Run(ctx context.Context) (cancellable.Result[int], error) {
	n := c.runs.Add(1)
	if c.limit > 0 && n >= c.limit {
		c.tok.Cancel()
	}
	return cancellable.Item(int(n)), nil
}

func (c *counter) Close() error {
	c.closes.Add(1)
	return nil
}

// scripted delegates Run to a function and counts calls and closes.
type scripted[T any] struct {
	run     func(ctx context.Context, n int32) (cancellable.Result[T], error)
	closeFn func() error
	handles atomic.Int32
	runs    atomic.Int32
	closes  atomic.Int32
}

func (s *scripted[T]) NewHandle(tok *cancel.Token) *cancel.Token {
	s.handles.Add(1)
	return tok
}

func (s *scripted[T]) Run(ctx context.Context) (cancellable.Result[T], error) {
	return s.run(ctx, s.runs.Add(1))
}

func (s *scripted[T]) Close() error {
	s.closes.Add(1)
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}

// blockUntilDone parks Run until its context ends.
func blockUntilDone[T any](ctx context.Context, _ int32) (cancellable.Result[T], error) {
	<-ctx.Done()
	return cancellable.Cancelled[T](), nil
}

var _ cancellable.Service[int, struct{}] = (*counter)(nil)

var _ cancellable.Service[int, *cancel.Token] = (*scripted[int])(nil)
