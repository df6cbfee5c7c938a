package app

import (
	"fmt"

	"github.com/atomicstack/tmux-tab-rename/internal/state"
	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
)

var renameWindow = tmux.RenameWindow

// tmuxHost renames tabs of one session. Tab ids are resolved against the
// latest tab snapshot, the same one the index was built from.
type tmuxHost struct {
	socketPath string
	tabs       state.TabStore
}

func (h *tmuxHost) RenameTab(tabID int, name string) error {
	tabs := h.tabs.Tabs()
	slot := tabID - 1
	if slot < 0 || slot >= len(tabs) {
		return fmt.Errorf("tab %d out of range (%d tabs)", tabID, len(tabs))
	}
	return renameWindow(h.socketPath, tmux.WindowTarget(h.tabs.Session(), tabs[slot].Position), name)
}
