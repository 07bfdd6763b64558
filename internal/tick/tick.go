// Package tick provides cheap periodic triggers for loops that must do
// something "every so often" without a timer goroutine.
//
// A driver checks its ticker once per iteration, between units of work:
//
//	for {
//	    if tok.IsCancelled() { return }
//	    if reports.Tick() { logProgress() }
//	    runOnce()
//	}
//
// Implementations:
//   - AtomicTicker: atomic timestamp comparison using runtime.nanotime
//   - BatchTicker: check the clock only every N calls
//   - StdTicker: time.Ticker wrapper, the baseline
//   - Never: never fires, for disabled reporting
package tick

import "time"

// Ticker signals when a time interval has elapsed.
//
// Tick is non-blocking. Implementations are safe for concurrent use unless
// documented otherwise, though typically only the loop goroutine polls.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	Stop()
}

// DefaultInterval is a reasonable progress-report period.
const DefaultInterval = 10 * time.Second

// New returns the ticker a loop should use for the given interval.
// A non-positive interval disables ticking.
func New(interval time.Duration) Ticker {
	if interval <= 0 {
		return Never{}
	}
	return NewAtomicTicker(interval)
}

// Never is a Ticker that never fires.
type Never struct{}

// Tick always returns false.
func (Never) Tick() bool { return false }

// Reset is a no-op.
func (Never) Reset() {}

// Stop is a no-op.
func (Never) Stop() {}
