package tick

import "time"

// StdTicker adapts time.Ticker to the Ticker interface with a
// non-blocking receive. It owns a runtime timer, so callers must Stop it.
type StdTicker struct {
	ticker   *time.Ticker
	interval time.Duration
}

// NewTicker creates a StdTicker with the specified interval.
func NewTicker(interval time.Duration) *StdTicker {
	return &StdTicker{
		ticker:   time.NewTicker(interval),
		interval: interval,
	}
}

// Tick returns true if a tick is pending on the underlying channel.
func (t *StdTicker) Tick() bool {
	select {
	case <-t.ticker.C:
		return true
	default:
		return false
	}
}

// Reset starts a new interval from now.
func (t *StdTicker) Reset() {
	t.ticker.Reset(t.interval)
}

// Stop releases the runtime timer.
func (t *StdTicker) Stop() {
	t.ticker.Stop()
}
