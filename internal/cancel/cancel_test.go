package cancel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
)

func TestToken(t *testing.T) {
	tok := cancel.New()

	if tok.IsCancelled() {
		t.Error("expected IsCancelled() = false before Cancel()")
	}

	tok.Cancel()

	if !tok.IsCancelled() {
		t.Error("expected IsCancelled() = true after Cancel()")
	}

	// Verify idempotent
	tok.Cancel()
	if !tok.IsCancelled() {
		t.Error("expected IsCancelled() = true after second Cancel()")
	}
}

func TestToken_CancelledChannel(t *testing.T) {
	tok := cancel.New()

	select {
	case <-tok.Cancelled():
		t.Error("expected Cancelled() to block before Cancel()")
	default:
		// OK
	}

	tok.Cancel()

	select {
	case <-tok.Cancelled():
		// OK
	default:
		t.Error("expected Cancelled() to be closed after Cancel()")
	}

	// A late observer must not miss the wake-up
	select {
	case <-tok.Cancelled():
		// OK
	case <-time.After(time.Second):
		t.Error("expected late observer to be released immediately")
	}
}

func TestToken_Context(t *testing.T) {
	tok := cancel.New()

	ctx := tok.Context()
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if ctx.Err() != nil {
		t.Errorf("expected nil Err() before Cancel(), got %v", ctx.Err())
	}

	tok.Cancel()

	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled after Cancel(), got %v", ctx.Err())
	}
}

func TestToken_Wait(t *testing.T) {
	tok := cancel.New()

	go func() {
		time.Sleep(20 * time.Millisecond)
		tok.Cancel()
	}()

	if err := tok.Wait(context.Background()); err != nil {
		t.Errorf("expected nil from Wait() after Cancel(), got %v", err)
	}

	// Already fired: returns immediately even with a dead ctx
	dead, stop := context.WithCancel(context.Background())
	stop()
	if err := tok.Wait(dead); err != nil {
		t.Errorf("expected nil from Wait() on fired token, got %v", err)
	}
}

func TestToken_WaitContextDone(t *testing.T) {
	tok := cancel.New()

	ctx, stop := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer stop()

	err := tok.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if tok.IsCancelled() {
		t.Error("expected token to stay active when only the wait ctx expired")
	}
}

func TestToken_Child(t *testing.T) {
	parent := cancel.New()
	child := parent.Child()

	child.Cancel()
	if parent.IsCancelled() {
		t.Error("expected parent to stay active after child Cancel()")
	}

	other := parent.Child()
	parent.Cancel()
	if !other.IsCancelled() {
		t.Error("expected child IsCancelled() = true after parent Cancel()")
	}
	select {
	case <-other.Cancelled():
		// OK
	default:
		t.Error("expected child Cancelled() to be closed after parent Cancel()")
	}
}

func TestFromContext(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	tok := cancel.FromContext(parent)

	if tok.IsCancelled() {
		t.Error("expected IsCancelled() = false while parent is live")
	}

	stop()

	if !tok.IsCancelled() {
		t.Error("expected IsCancelled() = true after parent cancel")
	}
}

// Test that the token satisfies both interfaces
func TestSignalInterface(t *testing.T) {
	testCases := []struct {
		name string
		s    cancel.Signal
	}{
		{"New", cancel.New()},
		{"FromContext", cancel.FromContext(context.Background())},
		{"Child", cancel.New().Child()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var c cancel.Canceler = tc.s
			if c.IsCancelled() {
				t.Error("expected IsCancelled() = false initially")
			}

			c.Cancel()

			if !c.IsCancelled() {
				t.Error("expected IsCancelled() = true after Cancel()")
			}
			<-tc.s.Cancelled()
		})
	}
}
