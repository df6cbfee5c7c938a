// Package ui contains the Bubble Tea program behind the watch command: a
// live, filterable view of the pane index.
//
// A backend.Watcher streams tmux snapshots. Each event goes through the same
// dispatcher the daemon uses, so the rows always reflect what a command
// would resolve against: pane id, 1-based tab id, status marker and base
// name. Key presses either move the cursor or edit the filter; filtering is
// fuzzy and handled by internal/ui/state.List.
package ui
