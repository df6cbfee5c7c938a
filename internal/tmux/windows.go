package tmux

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// WindowTarget addresses a window by session and index.
func WindowTarget(session string, index int) string {
	return fmt.Sprintf("%s:%d", session, index)
}

// RenameWindow sets the name of target to newName verbatim. The name is
// passed as its own argv entry after "--", so tmux neither expands it nor
// reads a leading dash as a flag.
func RenameWindow(socketPath, target, newName string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("rename window: empty target")
	}
	args := append(baseArgs(socketPath), "rename-window", "-t", target, "--", newName)
	if _, err := runExecCommand("tmux", args...).Output(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return fmt.Errorf("rename window %s: %s", target, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return fmt.Errorf("rename window %s: %w", target, err)
	}
	return nil
}
