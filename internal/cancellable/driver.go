package cancellable

import (
	"context"
	"errors"
	"io"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/tick"
)

// Stats is a snapshot of a driver's counters.
type Stats struct {
	Iterations uint64
	Items      uint64
}

// exit reasons, logged on the way out
const (
	reasonToken   = "token"
	reasonContext = "context"
	reasonService = "service"
	reasonSink    = "sink"
	reasonError   = "error"
)

type driver[T, H any] struct {
	svc     Service[T, H]
	tok     *cancel.Token
	cfg     config
	id      string
	log     logrus.FieldLogger
	reports tick.Ticker
	state   stateMachine

	iterations atomic.Uint64
	items      atomic.Uint64
	reason     string
	started    time.Time
}

func newDriver[T, H any](svc Service[T, H], tok *cancel.Token, opts []Option) *driver[T, H] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	id := uuid.NewString()
	return &driver[T, H]{
		svc: svc,
		tok: tok,
		cfg: cfg,
		id:  id,
		log: cfg.logger.WithFields(logrus.Fields{
			"service":   cfg.name,
			"driver_id": id,
		}),
		reports: cfg.reportTicker(),
	}
}

// start obtains the service handle and enters StateRunning.
func (d *driver[T, H]) start() H {
	h := d.svc.NewHandle(d.tok)
	d.state.transition(StatePending, StateRunning)
	d.started = time.Now()
	d.cfg.observer.OnStart(d.cfg.name, d.id)
	d.log.Debug("service started")
	return h
}

// loop issues Run calls until a terminal state is reached and hands each
// item to deliver. A nil return means the loop was cancelled.
func (d *driver[T, H]) loop(ctx context.Context, deliver func(context.Context, T) error) (err error) {
	defer func() {
		// Only the consumer of All can panic through here; Run and sinks
		// are wrapped by protect. Tear down, then let it propagate.
		if r := recover(); r != nil {
			d.reason = reasonError
			d.finish(&PanicError{Value: r, Stack: debug.Stack()})
			panic(r)
		}
		d.finish(err)
	}()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	stopAfter := context.AfterFunc(d.tok.Context(), cancelRun)
	defer stopAfter()

	for {
		if d.tok.IsCancelled() {
			d.reason = reasonToken
			return nil
		}
		if ctx.Err() != nil {
			d.reason = reasonContext
			return nil
		}
		if d.reports.Tick() {
			d.report()
		}

		var res Result[T]
		began := time.Now()
		runErr := protect(func() error {
			var err error
			res, err = d.svc.Run(runCtx)
			return err
		})
		d.iterations.Add(1)
		d.cfg.observer.OnIteration(d.cfg.name, time.Since(began))

		if runErr != nil {
			if d.stopping(ctx, runErr) {
				return nil
			}
			d.reason = reasonError
			return runErr
		}

		v, ok := res.Value()
		if !ok {
			d.reason = reasonService
			return nil
		}

		// The item is delivered even if the token fired while Run was
		// busy; cancellation is honoured at the top of the next iteration.
		if err := deliver(ctx, v); err != nil {
			if errors.Is(err, ErrSinkClosed) {
				d.reason = reasonSink
				return nil
			}
			if d.stopping(ctx, err) {
				return nil
			}
			d.reason = reasonError
			return err
		}
		d.items.Add(1)
		d.cfg.observer.OnItem(d.cfg.name)
	}
}

// stopping reports whether err is the service or sink noticing
// cancellation rather than a real failure, and records why.
func (d *driver[T, H]) stopping(ctx context.Context, err error) bool {
	if !isContextErr(err) {
		return false
	}
	switch {
	case d.tok.IsCancelled():
		d.reason = reasonToken
	case ctx.Err() != nil:
		d.reason = reasonContext
	default:
		return false
	}
	return true
}

// finish runs once on every exit path.
func (d *driver[T, H]) finish(err error) {
	next := StateCancelled
	if err != nil {
		next = StateFailed
	}
	d.state.transition(StateRunning, next)
	d.reports.Stop()

	if c, ok := d.svc.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			d.log.WithError(cerr).Warn("service close failed")
		}
	}

	d.cfg.observer.OnExit(d.cfg.name, next, err)

	log := d.log.WithFields(logrus.Fields{
		"state":      next.String(),
		"reason":     d.reason,
		"iterations": d.iterations.Load(),
		"items":      d.items.Load(),
		"uptime":     time.Since(d.started).String(),
	})
	if err != nil {
		log.WithError(err).Error("service failed")
		return
	}
	log.Info("service cancelled")
}

func (d *driver[T, H]) report() {
	d.log.WithFields(logrus.Fields{
		"iterations": d.iterations.Load(),
		"items":      d.items.Load(),
		"uptime":     time.Since(d.started).String(),
	}).Info("service progress")
}

func (d *driver[T, H]) stats() Stats {
	return Stats{
		Iterations: d.iterations.Load(),
		Items:      d.items.Load(),
	}
}
