package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ErrNoSession is returned when the session to serve cannot be determined.
var ErrNoSession = errors.New("unable to determine tmux session")

// ResolveSocketPath picks the tmux socket from the flag, the
// TMUX_TAB_RENAME_SOCKET override, $TMUX, or tmux's default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_TAB_RENAME_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// CurrentSession reports the session containing $TMUX_PANE.
func CurrentSession(socketPath string) (string, error) {
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	if target == "" {
		return "", ErrNoSession
	}
	var name string
	err := withClient(socketPath, func(client tmuxClient) error {
		out, err := client.DisplayMessage(target, "#{session_name}")
		name = strings.TrimSpace(out)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if name == "" {
		return "", ErrNoSession
	}
	return name, nil
}

// ParsePaneID strips the % sigil from a tmux pane id ("%7" -> "7").
func ParsePaneID(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "%")
}

// CurrentPaneID returns the numeric id of $TMUX_PANE, or "" outside tmux.
func CurrentPaneID() string {
	return ParsePaneID(os.Getenv("TMUX_PANE"))
}

// MarkPlugin flags paneTarget so it is left out of the pane index.
func MarkPlugin(socketPath, paneTarget string) error {
	paneTarget = strings.TrimSpace(paneTarget)
	if paneTarget == "" {
		return nil
	}
	return withClient(socketPath, func(client tmuxClient) error {
		_, err := client.Command("set-option", "-p", "-t", paneTarget, PluginOption, "1")
		return err
	})
}

// UnmarkPlugin clears the flag set by MarkPlugin so paneTarget is indexed
// again.
func UnmarkPlugin(socketPath, paneTarget string) error {
	paneTarget = strings.TrimSpace(paneTarget)
	if paneTarget == "" {
		return nil
	}
	return withClient(socketPath, func(client tmuxClient) error {
		_, err := client.Command("set-option", "-p", "-u", "-t", paneTarget, PluginOption)
		return err
	})
}
