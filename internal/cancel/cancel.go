// Package cancel provides the cancellation signal shared between a running
// service and whoever owns the right to stop it.
//
// A Token fuses the two approaches this package used to keep apart:
//   - an atomic.Bool for the IsCancelled() snapshot, a single load on the
//     hot path of a service loop
//   - a context.Context whose Done channel is closed exactly once, giving
//     every waiter a broadcast wake-up without polling
//
// Sharing a *Token is how it is cloned; any number of goroutines may hold it.
package cancel

// Canceler provides cancellation signaling to workers.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call IsCancelled() concurrently
//   - Cancel() may be called concurrently with IsCancelled()
type Canceler interface {
	// IsCancelled returns true if cancellation has been triggered.
	IsCancelled() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// Signal is a Canceler that can also be awaited.
type Signal interface {
	Canceler

	// Cancelled returns a channel that is closed once Cancel has been
	// called. If the signal already fired the channel is already closed.
	Cancelled() <-chan struct{}
}
