// Command cancelbench measures the per-iteration cost of the checks a
// service loop makes: is the token fired, and is a progress report due.
//
// Usage:
//
//	go run ./cmd/cancelbench -n 10000000
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/tick"
)

type result struct {
	name string
	dur  time.Duration
}

func (r result) perOp(n int) float64 {
	return float64(r.dur.Nanoseconds()) / float64(n)
}

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	batch := flag.Int("batch", 1000, "BatchTicker clock check period")
	flag.Parse()

	n := *iterations
	interval := time.Hour // Long so we measure check overhead, not actual ticks

	fmt.Printf("Benchmarking loop checks (%d iterations)\n", n)
	fmt.Printf("Architecture: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println("─────────────────────────────────────────────────────────")

	// Cancellation check alone
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	tok := cancel.New()
	child := tok.Child()

	checks := []result{
		{"ctx.Done() select", timeLoop(n, func() bool {
			select {
			case <-ctx.Done():
				return true
			default:
				return false
			}
		})},
		{"ctx.Err()", timeLoop(n, func() bool { return ctx.Err() != nil })},
		{"Token.IsCancelled()", timeLoop(n, tok.IsCancelled)},
		{"child Token.IsCancelled()", timeLoop(n, child.IsCancelled)},
	}
	printResults("Cancellation check:", checks, n)

	// Tick check alone
	tickers := []struct {
		name string
		t    tick.Ticker
	}{
		{"StdTicker", tick.NewTicker(interval)},
		{fmt.Sprintf("BatchTicker(%d)", *batch), tick.NewBatch(interval, *batch)},
		{"AtomicTicker", tick.NewAtomicTicker(interval)},
		{"Never", tick.Never{}},
	}
	ticks := make([]result, 0, len(tickers))
	for _, tk := range tickers {
		ticks = append(ticks, result{tk.name, timeLoop(n, tk.t.Tick)})
		tk.t.Stop()
	}
	printResults("Tick check:", ticks, n)

	// Both, as the driver does them at the top of every iteration
	fmt.Println()
	fmt.Println("Combined, as at the top of every driver iteration:")
	fmt.Println()
	fmt.Println("  for {")
	fmt.Println("      if tok.IsCancelled() { return }")
	fmt.Println("      if reports.Tick() { logProgress() }")
	fmt.Println("      svc.Run(ctx)")
	fmt.Println("  }")

	stdTicker := tick.NewTicker(interval)
	std := result{"ctx + StdTicker", timeLoop(n, func() bool {
		return ctx.Err() != nil || stdTicker.Tick()
	})}
	stdTicker.Stop()

	atomicTicker := tick.NewAtomicTicker(interval)
	opt := result{"Token + AtomicTicker", timeLoop(n, func() bool {
		return tok.IsCancelled() || atomicTicker.Tick()
	})}

	batchTicker := tick.NewBatch(interval, *batch)
	ultra := result{"Token + BatchTicker", timeLoop(n, func() bool {
		return tok.IsCancelled() || batchTicker.Tick()
	})}
	printResults("", []result{std, opt, ultra}, n)

	// Impact analysis
	fmt.Println()
	fmt.Println("Impact Analysis:")
	fmt.Println("─────────────────────────────────────────────────────────")
	savedNs := std.perOp(n) - opt.perOp(n)
	fmt.Printf("  Savings per iteration: %.2f ns\n", savedNs)
	fmt.Println()

	rates := []int{100_000, 1_000_000, 10_000_000}
	for _, rate := range rates {
		savedPerSec := savedNs * float64(rate) / 1e9
		fmt.Printf("  At %dK iterations/sec: save %.2f ms/sec (%.2f%% of 1 core)\n",
			rate/1000, savedPerSec*1000, savedPerSec*100)
	}
}

// timeLoop calls check n times. Results are folded into a sink so the
// calls are not optimised away.
func timeLoop(n int, check func() bool) time.Duration {
	var hits int
	start := time.Now()
	for i := 0; i < n; i++ {
		if check() {
			hits++
		}
	}
	dur := time.Since(start)
	sink += hits
	return dur
}

var sink int

func printResults(title string, rs []result, n int) {
	fmt.Println()
	if title != "" {
		fmt.Println(title)
	}
	base := rs[0].perOp(n)
	for _, r := range rs {
		p := r.perOp(n)
		fmt.Printf("  %-28s %12v  %7.2f ns/op  %6.2fx  %8.2f M ops/sec\n",
			r.name+":", r.dur, p, base/p, 1000/p)
	}
}
