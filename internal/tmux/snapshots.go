package tmux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-tab-rename/internal/pane"
)

const (
	tabFormat  = "#{window_index}\t#{window_name}"
	paneFormat = "#{pane_id}\t#{window_index}\t#{" + PluginOption + "}"
)

// FetchTabs lists the windows of session in index order.
func FetchTabs(socketPath, session string) (pane.TabSnapshot, error) {
	lines, err := list(socketPath, "list-windows", "-t", session, "-F", tabFormat)
	if err != nil {
		return nil, fmt.Errorf("list windows of %q: %w", session, err)
	}
	return parseTabLines(lines), nil
}

// FetchPanes lists every pane of session grouped by window index.
func FetchPanes(socketPath, session string) (pane.PaneManifest, error) {
	lines, err := list(socketPath, "list-panes", "-s", "-t", session, "-F", paneFormat)
	if err != nil {
		return nil, fmt.Errorf("list panes of %q: %w", session, err)
	}
	return parsePaneLines(lines), nil
}

// list runs a listing command over control mode, falling back to the tmux
// binary when no control-mode connection can be made.
func list(socketPath string, parts ...string) ([]string, error) {
	var output string
	err := withClient(socketPath, func(client tmuxClient) error {
		out, err := client.Command(parts...)
		output = out
		return err
	})
	if err == nil {
		return splitLines(output), nil
	}
	args := append(baseArgs(socketPath), parts...)
	raw, execErr := runExecCommand("tmux", args...).Output()
	if execErr != nil {
		return nil, err
	}
	return splitLines(string(raw)), nil
}

func parseTabLines(lines []string) pane.TabSnapshot {
	tabs := make(pane.TabSnapshot, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) < 2 {
			continue
		}
		position, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		tabs = append(tabs, pane.Tab{Position: position, Name: parts[1]})
	}
	return tabs
}

func parsePaneLines(lines []string) pane.PaneManifest {
	manifest := make(pane.PaneManifest)
	for _, line := range lines {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 2 {
			continue
		}
		id, ok := paneNumber(parts[0])
		if !ok {
			continue
		}
		position, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		plugin := len(parts) > 2 && strings.TrimSpace(parts[2]) != ""
		manifest[position] = append(manifest[position], pane.Pane{ID: id, IsPlugin: plugin})
	}
	return manifest
}

func paneNumber(raw string) (uint32, bool) {
	n, err := strconv.ParseUint(ParsePaneID(raw), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
