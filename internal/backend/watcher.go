package backend

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindTabs Kind = iota
	KindPanes
)

func (k Kind) String() string {
	switch k {
	case KindTabs:
		return "tabs"
	case KindPanes:
		return "panes"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll. Data is a
// pane.TabSnapshot for KindTabs and a pane.PaneManifest for KindPanes.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

var (
	fetchTabs = func(socketPath, session string) (interface{}, error) {
		return tmux.FetchTabs(socketPath, session)
	}
	fetchPanes = func(socketPath, session string) (interface{}, error) {
		return tmux.FetchPanes(socketPath, session)
	}
)

const minPollGap = 100 * time.Millisecond

// Watcher polls one tmux session at a fixed interval and publishes events.
// Unchanged snapshots are not re-published; errors always are.
type Watcher struct {
	socketPath string
	session    string
	interval   time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls session every interval.
func NewWatcher(socketPath, session string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		socketPath: socketPath,
		session:    session,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
		events:     make(chan Event, 16),
	}

	w.start(KindTabs, fetchTabs)
	w.start(KindPanes, fetchPanes)

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) start(kind Kind, fetch func(socketPath, session string) (interface{}, error)) {
	throttle := newThrottle(minPollGap)
	w.wg.Add(1)
	go w.poll(kind, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return fetch(w.socketPath, w.session)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	var last interface{}
	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		if err == nil {
			if last != nil && reflect.DeepEqual(last, data) {
				return true
			}
			last = data
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
