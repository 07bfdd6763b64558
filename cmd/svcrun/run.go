package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
	"github.com/randomizedcoder/go-cancellable/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// serve spawns svc and blocks until it exits. SIGINT, SIGTERM and the
// configured timeout fire the token; a metrics server failure aborts the
// driver outright. onStart, if set, receives the service handle.
func serve[T, H any](ctx context.Context, a *app, name string, svc cancellable.Service[T, H], sink cancellable.Sink[T], onStart func(H)) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tok := cancel.FromContext(sigCtx)
	if a.cfg.Timeout > 0 {
		timer := time.AfterFunc(a.cfg.Timeout, tok.Cancel)
		defer timer.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	h := cancellable.Spawn(gctx, svc, tok, sink,
		cancellable.WithName(name),
		cancellable.WithLogger(a.log),
		cancellable.WithObserver(metrics.NewObserver()),
		cancellable.WithReportInterval(a.cfg.ReportInterval),
	)
	if onStart != nil {
		onStart(h.Inner())
	}

	g.Go(h.Wait)

	if a.cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              a.cfg.MetricsAddr,
			Handler:           metricsMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			a.log.WithField("addr", srv.Addr).Info("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-h.Done():
			case <-gctx.Done():
			}
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancelShutdown()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
