package services

import (
	"context"
	"errors"
	"sync"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
)

var (
	// ErrInputClosed is returned by Run once the Sender has been closed
	// and drained, and by Send after Close.
	ErrInputClosed = errors.New("services: input closed")

	// ErrStopped is returned by Send once the pump's token has fired or
	// its loop has exited.
	ErrStopped = errors.New("services: pump stopped")
)

// TransformFunc maps one input to one output. An error fails the pump.
type TransformFunc[In, Out any] func(ctx context.Context, v In) (Out, error)

// pumpState is shared by a Pump and its Sender.
type pumpState struct {
	eof      chan struct{} // closed by Sender.Close
	eofOnce  sync.Once
	done     chan struct{} // closed by Pump.Close at teardown
	doneOnce sync.Once
}

// Pump reads values pushed through its Sender and yields them
// transformed, in order.
type Pump[In, Out any] struct {
	in        chan In
	st        *pumpState
	transform TransformFunc[In, Out]
}

// NewPump creates a pump whose input holds up to buffer values.
func NewPump[In, Out any](buffer int, transform TransformFunc[In, Out]) *Pump[In, Out] {
	return &Pump[In, Out]{
		in: make(chan In, max(buffer, 0)),
		st: &pumpState{
			eof:  make(chan struct{}),
			done: make(chan struct{}),
		},
		transform: transform,
	}
}

// NewHandle returns the Sender feeding the pump.
func (p *Pump[In, Out]) NewHandle(tok *cancel.Token) *Sender[In] {
	return &Sender[In]{
		in:      p.in,
		st:      p.st,
		stopped: tok.Cancelled(),
	}
}

// Run waits for the next input. After Sender.Close it drains what was
// already sent, then fails with ErrInputClosed.
func (p *Pump[In, Out]) Run(ctx context.Context) (cancellable.Result[Out], error) {
	select {
	case v := <-p.in:
		return p.apply(ctx, v)
	case <-p.st.eof:
		select {
		case v := <-p.in:
			return p.apply(ctx, v)
		default:
			return cancellable.Result[Out]{}, ErrInputClosed
		}
	case <-ctx.Done():
		return cancellable.Cancelled[Out](), nil
	}
}

func (p *Pump[In, Out]) apply(ctx context.Context, v In) (cancellable.Result[Out], error) {
	out, err := p.transform(ctx, v)
	if err != nil {
		return cancellable.Result[Out]{}, err
	}
	return cancellable.Item(out), nil
}

// Close is called by the driver at teardown. Pending and later Sends
// return ErrStopped.
func (p *Pump[In, Out]) Close() error {
	p.st.doneOnce.Do(func() { close(p.st.done) })
	return nil
}

// Sender is the owner's side of a Pump.
type Sender[T any] struct {
	in      chan<- T
	st      *pumpState
	stopped <-chan struct{}
}

// Send queues v, blocking while the input buffer is full. It returns
// ErrInputClosed after Close, and ErrStopped once the pump is cancelled
// or its loop has exited.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	select {
	case <-s.st.eof:
		return ErrInputClosed
	default:
	}
	select {
	case <-s.st.done:
		return ErrStopped
	case <-s.stopped:
		return ErrStopped
	default:
	}

	select {
	case s.in <- v:
		return nil
	case <-s.st.eof:
		return ErrInputClosed
	case <-s.st.done:
		return ErrStopped
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close marks the end of input. It never blocks and may be called more
// than once.
func (s *Sender[T]) Close() {
	s.st.eofOnce.Do(func() { close(s.st.eof) })
}
