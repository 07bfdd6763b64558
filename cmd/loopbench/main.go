// Command loopbench measures driver throughput: how fast a service loop
// can hand items to each kind of sink.
//
// Usage:
//
//	go run ./cmd/loopbench -n 1000000 -size 1024 -producers 4
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
	"github.com/randomizedcoder/go-cancellable/internal/queue"
)

// counting yields 1..n, then reports Cancelled.
func counting(n int) cancellable.Func[int] {
	i := 0
	return func(context.Context) (cancellable.Result[int], error) {
		if i >= n {
			return cancellable.Cancelled[int](), nil
		}
		i++
		return cancellable.Item(i), nil
	}
}

// drain pops n items from q, yielding the processor while it is empty.
func drain(q queue.Popper[int], n int) {
	for got := 0; got < n; {
		if _, ok := q.Pop(); ok {
			got++
			continue
		}
		runtime.Gosched()
	}
}

func main() {
	iterations := flag.Int("n", 1_000_000, "items per driver")
	size := flag.Int("size", 1024, "queue size")
	producers := flag.Int("producers", 4, "drivers feeding the sharded fan-in")
	flag.Parse()

	n := *iterations
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	fmt.Printf("Benchmarking driver hand-off (%d items, size=%d)\n", n, *size)
	fmt.Println("─────────────────────────────────────────────────")

	// Raw queue cost, no driver
	ch := queue.NewChannel[int](*size)
	start := time.Now()
	for i := 0; i < n; i++ {
		ch.Push(i)
		ch.Pop()
	}
	chDur := time.Since(start)

	ring := queue.NewRingBuffer[int](*size)
	start = time.Now()
	for i := 0; i < n; i++ {
		ring.Push(i)
		ring.Pop()
	}
	ringDur := time.Since(start)

	unbounded := queue.NewUnbounded[int]()
	start = time.Now()
	for i := 0; i < n; i++ {
		unbounded.Push(i)
		unbounded.Pop()
	}
	unboundedDur := time.Since(start)

	fmt.Printf("\nQueue only (push + pop per iteration):\n")
	report("Channel", chDur, n)
	report("RingBuffer", ringDur, n)
	report("Unbounded", unboundedDur, n)

	// Driver feeding a consumer goroutine
	ctx := context.Background()
	opts := []cancellable.Option{cancellable.WithLogger(log)}

	discardDur := timeDriver(func() {
		h := cancellable.Spawn[int, struct{}](ctx, counting(n), cancel.New(), nil, opts...)
		must(h.Wait())
	})

	chanDur := timeDriver(func() {
		out := make(chan int, *size)
		h := cancellable.Spawn[int, struct{}](ctx, counting(n), cancel.New(), cancellable.ChanSink(out), opts...)
		for range n {
			<-out
		}
		must(h.Wait())
	})

	ringSinkDur := timeDriver(func() {
		q := queue.NewRingBuffer[int](*size)
		h := cancellable.Spawn[int, struct{}](ctx, counting(n), cancel.New(), cancellable.QueueSink[int](q), opts...)
		drain(q, n)
		must(h.Wait())
	})

	unboundedSinkDur := timeDriver(func() {
		q := queue.NewUnbounded[int]()
		h := cancellable.Spawn[int, struct{}](ctx, counting(n), cancel.New(), cancellable.QueueSink[int](q), opts...)
		drain(q, n)
		must(h.Wait())
	})

	iterDur := timeDriver(func() {
		_, items := cancellable.All[int, struct{}](ctx, counting(n), cancel.New(), opts...)
		for _, err := range items {
			must(err)
		}
	})

	fmt.Printf("\nDriver to consumer (per item):\n")
	report("Discard", discardDur, n)
	report("ChanSink", chanDur, n)
	report("QueueSink(RingBuffer)", ringSinkDur, n)
	report("QueueSink(Unbounded)", unboundedSinkDur, n)
	report("All (range)", iterDur, n)

	// Several drivers fanning into one consumer
	if *producers > 0 {
		total := n * *producers
		shardedDur := timeDriver(func() {
			sharded, err := queue.NewSharded[int](uint64(*size * *producers), uint64(*producers))
			must(err)

			tok := cancel.New()
			handles := make([]*cancellable.Handle[int, struct{}], *producers)
			for p := range handles {
				w := sharded.Writer(uint64(p))
				handles[p] = cancellable.Spawn[int, struct{}](ctx, counting(n), tok.Child(),
					cancellable.QueueSink[int](w), append(opts, cancellable.WithName(fmt.Sprintf("producer-%d", p)))...)
			}
			drain(sharded, total)

			var wg sync.WaitGroup
			for _, h := range handles {
				wg.Add(1)
				go func() {
					defer wg.Done()
					must(h.Wait())
				}()
			}
			wg.Wait()
		})

		fmt.Printf("\nFan-in, %d drivers into one Sharded consumer:\n", *producers)
		report("Sharded", shardedDur, total)
	}
}

func timeDriver(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

func report(name string, d time.Duration, n int) {
	perOp := float64(d.Nanoseconds()) / float64(n)
	fmt.Printf("  %-24s %12v  %8.2f ns/op  %8.2f M ops/sec\n", name+":", d, perOp, 1000/perOp)
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "loopbench:", err)
		os.Exit(1)
	}
}
