package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
	"github.com/randomizedcoder/go-cancellable/internal/services"
)

func newListenCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Accept TCP connections, log each peer and close it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ln, err := services.NewListener(ctx, "tcp", addr)
			if err != nil {
				return err
			}
			sink := cancellable.SinkFunc[net.Conn](func(_ context.Context, c net.Conn) error {
				a.log.WithField("peer", c.RemoteAddr().String()).Info("new connection")
				return c.Close()
			})
			return serve(ctx, a, "listener", ln, sink, func(bound net.Addr) {
				a.log.WithField("addr", bound.String()).Info("listening")
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	return cmd
}

func newPumpCommand(a *app) *cobra.Command {
	var factor int
	cmd := &cobra.Command{
		Use:   "pump",
		Short: "Read integers from stdin, one per line, and print them multiplied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pump := services.NewPump(16, func(_ context.Context, v int) (int, error) {
				return v * factor, nil
			})
			out := cmd.OutOrStdout()
			sink := cancellable.SinkFunc[int](func(_ context.Context, v int) error {
				_, err := fmt.Fprintln(out, v)
				return err
			})
			err := serve(ctx, a, "pump", pump, sink, func(s *services.Sender[int]) {
				go feed(ctx, a, cmd.InOrStdin(), s)
			})
			if errors.Is(err, services.ErrInputClosed) {
				a.log.Debug("input exhausted")
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&factor, "factor", 2, "multiplier")
	return cmd
}

// feed sends each parsed line to s and closes it at end of input.
func feed(ctx context.Context, a *app, r io.Reader, s *services.Sender[int]) {
	defer s.Close()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			a.log.WithField("line", line).Warn("skipping non-integer input")
			continue
		}
		if err := s.Send(ctx, v); err != nil {
			return
		}
	}
}

func newPollCommand(a *app) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "poll PATH",
		Short: "Report a file's size at a fixed rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			poller := services.NewPoller(interval, func(context.Context) (int64, error) {
				fi, err := os.Stat(path)
				if err != nil {
					return 0, err
				}
				return fi.Size(), nil
			})
			sink := cancellable.SinkFunc[int64](func(_ context.Context, size int64) error {
				a.log.WithFields(logrus.Fields{"path": path, "size": size}).Info("polled")
				return nil
			})
			return serve(cmd.Context(), a, "poller", poller, sink, nil)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll period")
	return cmd
}

func newWatchCommand(a *app) *cobra.Command {
	var writesOnly bool
	cmd := &cobra.Command{
		Use:   "watch PATH...",
		Short: "Log filesystem events for the given paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ops fsnotify.Op
			if writesOnly {
				ops = fsnotify.Write | fsnotify.Create
			}
			w, err := services.NewWatcher(ops, args...)
			if err != nil {
				return err
			}
			sink := cancellable.SinkFunc[fsnotify.Event](func(_ context.Context, ev fsnotify.Event) error {
				a.log.WithFields(logrus.Fields{"name": ev.Name, "op": ev.Op.String()}).Info("event")
				return nil
			})
			return serve(cmd.Context(), a, "watcher", w, sink, func(l *services.WatchList) {
				a.log.WithField("paths", l.Paths()).Debug("watching")
			})
		},
	}
	cmd.Flags().BoolVar(&writesOnly, "writes-only", false, "only report writes and creates")
	return cmd
}
