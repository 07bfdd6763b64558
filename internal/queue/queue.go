// Package queue provides the non-blocking item buffers a driver hands its
// items to when the consumer runs on another goroutine.
//
// Implementations:
//   - ChannelQueue: buffered channel, any number of producers/consumers
//   - RingBuffer: lock-free SPSC ring, one driver feeding one consumer
//   - Sharded: lock-free MPSC fan-in, many drivers feeding one consumer
//   - Unbounded: mutex-guarded growable FIFO, never reports full
//
// # RingBuffer Safety (IMPORTANT)
//
// RingBuffer is a Single-Producer Single-Consumer (SPSC) queue.
// It is NOT safe for multiple goroutines to call Push() or Pop() concurrently.
// A single driver loop satisfies the producer side by construction.
// The implementation includes runtime guards that panic on misuse.
package queue

// Pusher is the producer side of a queue.
type Pusher[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool
}

// Popper is the consumer side of a queue.
type Popper[T any] interface {
	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)
}

// Queue is a FIFO with both sides. Implementations are non-blocking.
type Queue[T any] interface {
	Pusher[T]
	Popper[T]

	// Len returns the number of buffered items. It may be stale.
	Len() int
}
