package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/tmux-tab-rename/internal/backend"
	"github.com/atomicstack/tmux-tab-rename/internal/command"
	"github.com/atomicstack/tmux-tab-rename/internal/data/dispatcher"
	"github.com/atomicstack/tmux-tab-rename/internal/ipc"
	"github.com/atomicstack/tmux-tab-rename/internal/logging"
	"github.com/atomicstack/tmux-tab-rename/internal/logging/events"
	"github.com/atomicstack/tmux-tab-rename/internal/metrics"
	"github.com/atomicstack/tmux-tab-rename/internal/state"
	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
)

var errWatcherStopped = errors.New("backend watcher stopped")

// daemon owns the pane index. Only run touches it.
type daemon struct {
	tabs       state.TabStore
	index      state.IndexStore
	dispatcher *dispatcher.Dispatcher
	handler    *command.Handler
	metrics    *metrics.Metrics
}

func newDaemon(target Target, m *metrics.Metrics) *daemon {
	tabs := state.NewTabStore()
	tabs.SetSession(target.Session)
	panes := state.NewPaneStore()
	index := state.NewIndexStore()
	handler := command.NewHandler(&tmuxHost{socketPath: target.SocketPath, tabs: tabs}, index)
	if m != nil {
		handler.SetObserver(m)
	}
	return &daemon{
		tabs:       tabs,
		index:      index,
		dispatcher: dispatcher.New(tabs, panes, index),
		handler:    handler,
		metrics:    m,
	}
}

// run processes snapshots and commands one at a time until ctx ends.
func (d *daemon) run(ctx context.Context, snapshots <-chan backend.Event, calls <-chan *ipc.Call) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-snapshots:
			if !ok {
				return errWatcherStopped
			}
			d.apply(evt)
		case call := <-calls:
			d.serve(call)
		}
	}
}

func (d *daemon) apply(evt backend.Event) {
	res := d.dispatcher.Handle(evt)
	if d.metrics == nil {
		return
	}
	if evt.Err != nil {
		d.metrics.BackendError(evt.Kind.String())
		return
	}
	if res.Rebuilt {
		d.metrics.Rebuilt(res.Trigger(), res.IndexSize)
	}
}

func (d *daemon) serve(call *ipc.Call) {
	msg := command.Message{Name: call.Request.Name, Payload: call.Request.Payload}
	call.Finish(d.handler.Handle(msg, call.Pipe))
}

var newWatcher = backend.NewWatcher

// Serve runs the daemon for the resolved session until ctx ends.
func Serve(ctx context.Context, cfg Config) error {
	target, err := Resolve(cfg)
	if err != nil {
		return err
	}
	srv, err := ipc.Listen(target.IPCSocket)
	if err != nil {
		return err
	}
	defer srv.Close() //nolint:errcheck
	defer tmux.Shutdown()

	events.App.Start(map[string]interface{}{
		"session":       target.Session,
		"socket":        target.SocketPath,
		"ipcSocket":     target.IPCSocket,
		"pollInterval":  cfg.PollInterval.String(),
		"metricsListen": cfg.MetricsListen,
	})

	watcher := newWatcher(target.SocketPath, target.Session, cfg.PollInterval)
	defer stopWatcher(watcher)

	m := metrics.New()
	d := newDaemon(target, m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx)
	})
	if cfg.MetricsListen != "" {
		g.Go(func() error {
			return m.Serve(gctx, cfg.MetricsListen)
		})
	}
	g.Go(func() error {
		err := d.run(gctx, watcher.Events(), srv.Calls())
		if err == nil {
			events.App.Stop("context done")
			return context.Canceled
		}
		events.App.Stop(err.Error())
		return err
	})
	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		logging.Error(err)
	}
	return err
}
