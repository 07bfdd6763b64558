package cancellable

import "time"

// Observer is notified of driver lifecycle events. Calls come from the
// loop goroutine and must not block.
type Observer interface {
	OnStart(name, id string)
	OnIteration(name string, took time.Duration)
	OnItem(name string)
	OnExit(name string, state State, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnStart(string, string) {}
func (NopObserver) OnIteration(string, time.Duration) {}
func (NopObserver) OnItem(string) {}
func (NopObserver) OnExit(string, State, error) {}
