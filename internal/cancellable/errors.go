package cancellable

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrSinkClosed is returned by a Sink whose consumer has gone away. The
// driver stops cleanly, as if cancelled.
var ErrSinkClosed = errors.New("cancellable: sink closed")

// PanicError is returned by Handle.Wait when Run or the sink panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("cancellable: panic: %v", e.Value)
}

// protect runs fn, turning a panic into a *PanicError.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// isContextErr reports whether err is, or wraps, a context error.
func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
