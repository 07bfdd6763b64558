package queue

import (
	"sync/atomic"
)

// RingBuffer is a lock-free SPSC (Single-Producer Single-Consumer) queue.
//
// The producer is normally one driver loop and the consumer one reader
// goroutine. Concurrent Push or concurrent Pop panics.
type RingBuffer[T any] struct {
	buf  []T
	mask uint64

	// Cache line padding to prevent false sharing
	_pad0 [56]byte //nolint:unused

	head atomic.Uint64 // Written by producer, read by consumer

	_pad1 [56]byte //nolint:unused

	tail atomic.Uint64 // Written by consumer, read by producer

	_pad2 [56]byte //nolint:unused

	pushActive atomic.Uint32
	popActive  atomic.Uint32
}

// NewRingBuffer creates a RingBuffer holding at least size items.
// Size is rounded up to the next power of 2.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}

	return &RingBuffer[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

// Push adds an item, returning false if the ring is full.
func (r *RingBuffer[T]) Push(v T) bool {
	if !r.pushActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Push on SPSC RingBuffer - only one producer allowed")
	}
	defer r.pushActive.Store(0)

	head := r.head.Load()
	if head-r.tail.Load() >= uint64(len(r.buf)) {
		return false
	}

	r.buf[head&r.mask] = v
	r.head.Store(head + 1)
	return true
}

// Pop removes an item, returning false if the ring is empty.
// The vacated slot is zeroed so the ring does not pin delivered items.
func (r *RingBuffer[T]) Pop() (T, bool) {
	if !r.popActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Pop on SPSC RingBuffer - only one consumer allowed")
	}
	defer r.popActive.Store(0)

	var zero T
	tail := r.tail.Load()
	if tail >= r.head.Load() {
		return zero, false
	}

	slot := &r.buf[tail&r.mask]
	v := *slot
	*slot = zero
	r.tail.Store(tail + 1)
	return v, true
}

// Len returns the current number of items in the queue.
// This is an approximation and may be slightly stale.
func (r *RingBuffer[T]) Len() int {
	return int(r.head.Load() - r.tail.Load())
}

// Cap returns the capacity of the queue.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}
