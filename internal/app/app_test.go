package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tmux-tab-rename/internal/backend"
	"github.com/atomicstack/tmux-tab-rename/internal/command"
	"github.com/atomicstack/tmux-tab-rename/internal/ipc"
	"github.com/atomicstack/tmux-tab-rename/internal/pane"
	"github.com/atomicstack/tmux-tab-rename/internal/state"
	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
)

type renameCall struct {
	socket string
	target string
	name   string
}

func withStubRename(t *testing.T) *[]renameCall {
	t.Helper()
	var calls []renameCall
	orig := renameWindow
	renameWindow = func(socket, target, name string) error {
		calls = append(calls, renameCall{socket, target, name})
		return nil
	}
	t.Cleanup(func() { renameWindow = orig })
	return &calls
}

func withStubResolve(t *testing.T, session string, err error) {
	t.Helper()
	origSocket, origSession := resolveSocketPath, currentSession
	resolveSocketPath = func(flag string) (string, error) {
		if flag != "" {
			return flag, nil
		}
		return "/tmp/tmux-test/default", nil
	}
	currentSession = func(string) (string, error) { return session, err }
	t.Cleanup(func() {
		resolveSocketPath = origSocket
		currentSession = origSession
	})
}

func TestResolveUsesCurrentSession(t *testing.T) {
	withStubResolve(t, "work", nil)
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	target, err := Resolve(Config{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target.SocketPath != "/tmp/tmux-test/default" || target.Session != "work" {
		t.Fatalf("unexpected target %+v", target)
	}
	if target.IPCSocket != ipc.DefaultSocketPath("work") {
		t.Fatalf("expected default ipc socket, got %q", target.IPCSocket)
	}
}

func TestResolvePrefersExplicitValues(t *testing.T) {
	withStubResolve(t, "", errors.New("should not be called"))
	target, err := Resolve(Config{SocketPath: "/s", Session: "dev", IPCSocket: "/ipc.sock"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target != (Target{SocketPath: "/s", Session: "dev", IPCSocket: "/ipc.sock"}) {
		t.Fatalf("unexpected target %+v", target)
	}
}

func TestResolveWithoutSession(t *testing.T) {
	withStubResolve(t, "", tmux.ErrNoSession)
	_, err := Resolve(Config{})
	if !errors.Is(err, tmux.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if !strings.Contains(err.Error(), "--session") {
		t.Fatalf("expected hint in error, got %v", err)
	}
}

func TestTmuxHostRenamesByPosition(t *testing.T) {
	calls := withStubRename(t)
	tabs := state.NewTabStore()
	tabs.SetSession("work")
	tabs.SetTabs(pane.TabSnapshot{{Position: 1, Name: "a"}, {Position: 4, Name: "b"}})
	host := &tmuxHost{socketPath: "/sock", tabs: tabs}

	if err := host.RenameTab(2, "🤖 b"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	want := renameCall{"/sock", "work:4", "🤖 b"}
	if len(*calls) != 1 || (*calls)[0] != want {
		t.Fatalf("expected %+v, got %+v", want, *calls)
	}
}

func TestTmuxHostRejectsUnknownTab(t *testing.T) {
	calls := withStubRename(t)
	tabs := state.NewTabStore()
	tabs.SetTabs(pane.TabSnapshot{{Position: 0, Name: "a"}})
	host := &tmuxHost{tabs: tabs}
	for _, id := range []int{0, 2} {
		if err := host.RenameTab(id, "x"); err == nil {
			t.Fatalf("expected error for tab %d", id)
		}
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no renames, got %+v", *calls)
	}
}

type recordingOutput struct {
	lines []string
}

func (r *recordingOutput) Output(name, data string) { r.lines = append(r.lines, "output:"+name+":"+data) }
func (r *recordingOutput) Unblock(name string)      { r.lines = append(r.lines, "unblock:"+name) }

func loadDaemon(t *testing.T, d *daemon) {
	t.Helper()
	d.apply(backend.Event{Kind: backend.KindTabs, Data: pane.TabSnapshot{
		{Position: 0, Name: "shell"},
		{Position: 1, Name: "🤖 build"},
	}})
	d.apply(backend.Event{Kind: backend.KindPanes, Data: pane.PaneManifest{
		0: {{ID: 1}},
		1: {{ID: 5}, {ID: 9, IsPlugin: true}},
	}})
}

func TestDaemonAnswersFromLatestIndex(t *testing.T) {
	withStubRename(t)
	d := newDaemon(Target{SocketPath: "/sock", Session: "work"}, nil)
	loadDaemon(t, d)
	if d.index.Len() != 2 {
		t.Fatalf("expected 2 indexed panes, got %d", d.index.Len())
	}

	out := &recordingOutput{}
	payload := `{"pane_id":"5","action":"get_status"}`
	if err := d.handler.Handle(command.Message{Name: command.NameStatus, Payload: &payload}, out); err != nil {
		t.Fatalf("handle: %v", err)
	}
	want := []string{"output:tab-status:🤖", "unblock:tab-status"}
	if strings.Join(out.lines, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, out.lines)
	}
}

func TestDaemonPluginPaneIsUnknown(t *testing.T) {
	withStubRename(t)
	d := newDaemon(Target{Session: "work"}, nil)
	loadDaemon(t, d)
	payload := `{"pane_id":"9","action":"get_name"}`
	err := d.handler.Handle(command.Message{Name: command.NameStatus, Payload: &payload}, &recordingOutput{})
	if !errors.Is(err, command.ErrUnknownPane) {
		t.Fatalf("expected unknown pane, got %v", err)
	}
}

func TestDaemonRenameTargetsWindow(t *testing.T) {
	calls := withStubRename(t)
	d := newDaemon(Target{SocketPath: "/sock", Session: "work"}, nil)
	loadDaemon(t, d)
	payload := `{"pane_id":"5","action":"clear_status"}`
	if err := d.handler.Handle(command.Message{Name: command.NameStatus, Payload: &payload}, &recordingOutput{}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	want := renameCall{"/sock", "work:1", "build"}
	if len(*calls) != 1 || (*calls)[0] != want {
		t.Fatalf("expected %+v, got %+v", want, *calls)
	}
}

func TestDaemonRunStopsWhenWatcherCloses(t *testing.T) {
	d := newDaemon(Target{Session: "work"}, nil)
	snapshots := make(chan backend.Event)
	close(snapshots)
	err := d.run(context.Background(), snapshots, make(chan *ipc.Call))
	if !errors.Is(err, errWatcherStopped) {
		t.Fatalf("expected errWatcherStopped, got %v", err)
	}
}

func TestDaemonRunStopsOnContext(t *testing.T) {
	d := newDaemon(Target{Session: "work"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.run(ctx, make(chan backend.Event), make(chan *ipc.Call))
	}()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestPipeReturnsNamedOutputs(t *testing.T) {
	orig := sendRequest
	var got ipc.Request
	sendRequest = func(ctx context.Context, socket string, req ipc.Request) ([]ipc.Response, error) {
		if socket != "/ipc.sock" {
			t.Fatalf("unexpected socket %q", socket)
		}
		if _, ok := ctx.Deadline(); !ok {
			t.Fatal("expected a deadline")
		}
		got = req
		return []ipc.Response{
			{Type: ipc.TypeOutput, Name: command.NameStatus, Data: "🤖"},
			{Type: ipc.TypeUnblock, Name: command.NameStatus},
			{Type: ipc.TypeDone},
		}, nil
	}
	t.Cleanup(func() { sendRequest = orig })

	payload := `{"pane_id":"1","action":"get_status"}`
	lines, err := Pipe(context.Background(), Config{IPCSocket: "/ipc.sock"}, command.NameStatus, &payload)
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if len(lines) != 1 || lines[0] != "🤖" {
		t.Fatalf("unexpected lines %q", lines)
	}
	if got.Name != command.NameStatus || got.Payload == nil || *got.Payload != payload {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestSnapshotOrdersByPane(t *testing.T) {
	withStubResolve(t, "work", nil)
	origTabs, origPanes := fetchTabs, fetchPanes
	fetchTabs = func(string, string) (pane.TabSnapshot, error) {
		return pane.TabSnapshot{{Position: 2, Name: "a"}, {Position: 5, Name: "🤖 b"}}, nil
	}
	fetchPanes = func(string, string) (pane.PaneManifest, error) {
		return pane.PaneManifest{2: {{ID: 8}}, 5: {{ID: 3}, {ID: 4, IsPlugin: true}}}, nil
	}
	t.Cleanup(func() { fetchTabs, fetchPanes = origTabs, origPanes })

	rows, err := Snapshot(Config{})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := []IndexRow{
		{PaneID: 3, TabID: 2, DisplayIndex: 1, WindowIndex: 5, TabName: "🤖 b"},
		{PaneID: 8, TabID: 1, DisplayIndex: 0, WindowIndex: 2, TabName: "a"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestSnapshotPropagatesFetchError(t *testing.T) {
	withStubResolve(t, "work", nil)
	orig := fetchTabs
	fetchTabs = func(string, string) (pane.TabSnapshot, error) { return nil, errors.New("boom") }
	t.Cleanup(func() { fetchTabs = orig })
	if _, err := Snapshot(Config{}); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func withStubPluginMarks(t *testing.T, pane string) *[]string {
	t.Helper()
	var calls []string
	origMark, origUnmark, origPane := markPlugin, unmarkPlugin, currentPaneID
	markPlugin = func(socket, target string) error {
		calls = append(calls, "mark "+target)
		return nil
	}
	unmarkPlugin = func(socket, target string) error {
		calls = append(calls, "unmark "+target)
		return nil
	}
	currentPaneID = func() string { return pane }
	t.Cleanup(func() {
		markPlugin, unmarkPlugin, currentPaneID = origMark, origUnmark, origPane
	})
	return &calls
}

func TestPluginPaneIsReleasedAfterRun(t *testing.T) {
	calls := withStubPluginMarks(t, "6")
	runErr := errors.New("program failed")
	err := asPluginPane("/sock", func() error {
		*calls = append(*calls, "run")
		return runErr
	})
	if !errors.Is(err, runErr) {
		t.Fatalf("expected run error, got %v", err)
	}
	want := "mark %6|run|unmark %6"
	if got := strings.Join(*calls, "|"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPluginPaneOutsideTmux(t *testing.T) {
	calls := withStubPluginMarks(t, "")
	if err := asPluginPane("/sock", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no pane option changes, got %v", *calls)
	}
}

type recordingWatcher struct {
	calls []string
}

func (r *recordingWatcher) Stop() { r.calls = append(r.calls, "stop") }
func (r *recordingWatcher) Wait() { r.calls = append(r.calls, "wait") }

func TestStopWatcherWaitsForPollers(t *testing.T) {
	w := &recordingWatcher{}
	stopWatcher(w)
	if got := strings.Join(w.calls, "|"); got != "stop|wait" {
		t.Fatalf("expected stop then wait, got %q", got)
	}
}
