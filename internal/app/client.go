package app

import (
	"context"
	"time"

	"github.com/atomicstack/tmux-tab-rename/internal/ipc"
	"github.com/atomicstack/tmux-tab-rename/internal/pane"
	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
)

// DefaultTimeout bounds a single client request.
const DefaultTimeout = 5 * time.Second

var sendRequest = ipc.Send

// Pipe delivers one named command to the serving process for cfg's session
// and returns the output lines addressed to name.
func Pipe(ctx context.Context, cfg Config, name string, payload *string) ([]string, error) {
	socket := cfg.IPCSocket
	if socket == "" {
		target, err := Resolve(cfg)
		if err != nil {
			return nil, err
		}
		socket = target.IPCSocket
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	responses, err := sendRequest(ctx, socket, ipc.Request{Name: name, Payload: payload})
	if err != nil {
		return nil, err
	}
	return ipc.Outputs(responses, name), nil
}

// IndexRow is one pane of a one-shot index snapshot.
type IndexRow struct {
	PaneID       uint32 `json:"pane_id" yaml:"pane_id"`
	TabID        int    `json:"tab_id" yaml:"tab_id"`
	DisplayIndex int    `json:"display_index" yaml:"display_index"`
	WindowIndex  int    `json:"window_index" yaml:"window_index"`
	TabName      string `json:"tab_name" yaml:"tab_name"`
}

var (
	fetchTabs  = tmux.FetchTabs
	fetchPanes = tmux.FetchPanes
)

// Snapshot builds the pane index once from the live session, without a
// serving process, and returns it ordered by pane id.
func Snapshot(cfg Config) ([]IndexRow, error) {
	target, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	defer tmux.Shutdown()
	tabs, err := fetchTabs(target.SocketPath, target.Session)
	if err != nil {
		return nil, err
	}
	panes, err := fetchPanes(target.SocketPath, target.Session)
	if err != nil {
		return nil, err
	}
	idx := pane.Rebuild(tabs, panes)
	rows := make([]IndexRow, 0, idx.Len())
	for _, id := range idx.IDs() {
		entry, _ := idx.Lookup(id)
		rows = append(rows, IndexRow{
			PaneID:       id,
			TabID:        entry.TargetID(),
			DisplayIndex: entry.DisplayIndex,
			WindowIndex:  tabs[entry.DisplayIndex].Position,
			TabName:      entry.TabName,
		})
	}
	return rows, nil
}
