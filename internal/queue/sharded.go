package queue

import (
	"fmt"

	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// Sharded is a lock-free MPSC fan-in built on go-lock-free-ring.
//
// Each producer writes through its own Writer so that concurrent drivers
// land on distinct shards; a single consumer drains with Pop. Items from
// one writer keep their order, items across writers are interleaved.
type Sharded[T any] struct {
	r *ring.ShardedRing
}

// NewSharded creates a fan-in of the given total capacity split across
// shards. Capacity and shards follow go-lock-free-ring's constraints.
func NewSharded[T any](capacity, shards uint64) (*Sharded[T], error) {
	r, err := ring.NewShardedRing(capacity, shards)
	if err != nil {
		return nil, fmt.Errorf("queue: sharded ring: %w", err)
	}
	return &Sharded[T]{r: r}, nil
}

// Writer returns the producer side for one producer id.
func (s *Sharded[T]) Writer(producerID uint64) *ShardWriter[T] {
	return &ShardWriter[T]{r: s.r, id: producerID}
}

// Pop removes an item, returning false if every shard is empty.
//
// SINGLE CONSUMER: only one goroutine may call Pop().
func (s *Sharded[T]) Pop() (T, bool) {
	v, ok := s.r.TryRead()
	if !ok {
		var zero T
		return zero, false
	}
	item, _ := v.(T)
	return item, true
}

// ShardWriter pushes into a Sharded fan-in under a fixed producer id.
type ShardWriter[T any] struct {
	r  *ring.ShardedRing
	id uint64
}

// Push adds an item, returning false if this producer's shard is full.
func (w *ShardWriter[T]) Push(v T) bool {
	return w.r.Write(w.id, v)
}

// ID returns the producer id.
func (w *ShardWriter[T]) ID() uint64 {
	return w.id
}
