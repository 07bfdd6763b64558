package queue_test

import (
	"testing"

	"github.com/randomizedcoder/go-cancellable/internal/queue"
)

func testQueue[T comparable](t *testing.T, q queue.Queue[T], val T) {
	t.Helper()

	// Empty queue returns false
	if _, ok := q.Pop(); ok {
		t.Error("expected Pop() = false on empty queue")
	}

	if !q.Push(val) {
		t.Error("expected Push() = true")
	}
	if q.Len() != 1 {
		t.Errorf("expected Len() = 1, got %d", q.Len())
	}

	got, ok := q.Pop()
	if !ok {
		t.Error("expected Pop() = true after Push()")
	}
	if got != val {
		t.Errorf("expected %v, got %v", val, got)
	}

	if _, ok := q.Pop(); ok {
		t.Error("expected Pop() = false after draining")
	}
}

func testFIFO(t *testing.T, q queue.Queue[int], n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if !q.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}
	for i := 0; i < n; i++ {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("expected Pop() = true for item %d", i)
		}
		if got != i {
			t.Errorf("FIFO violation: expected %d, got %d", i, got)
		}
	}
}

func TestQueueInterface(t *testing.T) {
	testCases := []struct {
		name string
		q    queue.Queue[int]
	}{
		{"Channel", queue.NewChannel[int](8)},
		{"RingBuffer", queue.NewRingBuffer[int](8)},
		{"Unbounded", queue.NewUnbounded[int]()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testQueue(t, tc.q, 42)
			testFIFO(t, tc.q, 5)
		})
	}
}

func TestBounded_Full(t *testing.T) {
	testCases := []struct {
		name string
		q    queue.Queue[int]
	}{
		{"Channel", queue.NewChannel[int](2)},
		{"RingBuffer", queue.NewRingBuffer[int](2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.q.Push(1) || !tc.q.Push(2) {
				t.Fatal("expected first two Push() = true")
			}
			if tc.q.Push(3) {
				t.Error("expected Push(3) = false on full queue")
			}
		})
	}
}

func TestRingBuffer_PowerOfTwo(t *testing.T) {
	if got := queue.NewRingBuffer[int](5).Cap(); got != 8 {
		t.Errorf("expected Cap() = 8 (rounded up), got %d", got)
	}
	if got := queue.NewRingBuffer[int](8).Cap(); got != 8 {
		t.Errorf("expected Cap() = 8, got %d", got)
	}
}

func TestRingBuffer_WrapAround(t *testing.T) {
	q := queue.NewRingBuffer[int](2)

	for round := 0; round < 10; round++ {
		if !q.Push(round) {
			t.Fatalf("round %d: expected Push() = true", round)
		}
		got, ok := q.Pop()
		if !ok || got != round {
			t.Fatalf("round %d: expected %d, got %d (ok=%v)", round, round, got, ok)
		}
	}
}

func TestChannelQueue_C(t *testing.T) {
	q := queue.NewChannel[string](1)
	q.Push("x")
	if got := <-q.C(); got != "x" {
		t.Errorf("expected x from C(), got %q", got)
	}
}

func TestUnbounded_NeverFull(t *testing.T) {
	q := queue.NewUnbounded[int]()
	for i := 0; i < 10_000; i++ {
		if !q.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}
	if q.Len() != 10_000 {
		t.Errorf("expected Len() = 10000, got %d", q.Len())
	}
}

func TestUnbounded_NilInterface(t *testing.T) {
	q := queue.NewUnbounded[error]()
	q.Push(nil)
	v, ok := q.Pop()
	if !ok {
		t.Fatal("expected Pop() = true")
	}
	if v != nil {
		t.Errorf("expected nil, got %v", v)
	}
}

func TestSharded(t *testing.T) {
	s, err := queue.NewSharded[int](64, 2)
	if err != nil {
		t.Fatalf("NewSharded: %v", err)
	}

	if _, ok := s.Pop(); ok {
		t.Error("expected Pop() = false on empty fan-in")
	}

	w := s.Writer(0)
	if w.ID() != 0 {
		t.Errorf("expected ID() = 0, got %d", w.ID())
	}
	for i := 0; i < 5; i++ {
		if !w.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}

	// One writer: order preserved
	for i := 0; i < 5; i++ {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("expected Pop() = true for item %d", i)
		}
		if got != i {
			t.Errorf("FIFO violation within one writer: expected %d, got %d", i, got)
		}
	}
}
