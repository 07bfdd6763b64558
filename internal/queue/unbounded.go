package queue

import (
	"sync"

	"github.com/eapache/queue"
)

// Unbounded is a growable FIFO guarded by a mutex.
//
// Push never reports full, which makes it the buffer of choice when the
// driver must never wait on a slow consumer. Memory grows with the
// backlog; there is no backpressure.
type Unbounded[T any] struct {
	mu sync.Mutex
	q  *queue.Queue
}

// NewUnbounded creates an empty Unbounded queue.
func NewUnbounded[T any]() *Unbounded[T] {
	return &Unbounded[T]{q: queue.New()}
}

// Push appends an item. It always returns true.
func (u *Unbounded[T]) Push(v T) bool {
	u.mu.Lock()
	u.q.Add(v)
	u.mu.Unlock()
	return true
}

// Pop removes the oldest item, returning false if the queue is empty.
func (u *Unbounded[T]) Pop() (T, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.q.Length() == 0 {
		var zero T
		return zero, false
	}
	// comma-ok keeps a stored nil interface value from panicking
	v, _ := u.q.Remove().(T)
	return v, true
}

// Len returns the current number of items in the queue.
func (u *Unbounded[T]) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.q.Length()
}
