// Package testutil runs throwaway tmux servers for integration tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

var ErrPaneUnavailable = errors.New("tmux pane unavailable")

// TestSession is the session StartTmuxServer creates.
const TestSession = "tab-rename-test"

// RequireTmux skips the calling test when tmux is not on PATH.
func RequireTmux(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("skipping: tmux binary not available")
	}
}

// StartTmuxServer boots a tmux server with TestSession on a private socket.
// It returns the socket, a cleanup that kills the server, and the directory
// holding the server's verbose logs.
func StartTmuxServer(t *testing.T) (string, func(), string) {
	t.Helper()
	RequireTmux(t)
	// unix socket paths are length-limited, so stay out of t.TempDir.
	dir, err := os.MkdirTemp("/tmp", "tmux-tab-rename-*")
	if err != nil {
		t.Fatalf("mkdir tmux dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	socket := filepath.Join(dir, "tmux-test.sock")
	start := tmuxCommand(socket, "-f", "/dev/null", "-vv",
		"new-session", "-d", "-x", "120", "-y", "30", "-s", TestSession, "sleep", "600")
	start.Dir = dir
	if err := start.Run(); err != nil {
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := killServer(ctx, socket); err != nil {
			_ = tmuxCommand(socket, "kill-server").Run()
		}
	}
	return socket, cleanup, dir
}

// AssertNoServerCrash fails the test if a tmux server log under logDir
// reports an unexpected exit.
func AssertNoServerCrash(t *testing.T, logDir string) {
	t.Helper()
	logs, _ := filepath.Glob(filepath.Join(logDir, "tmux-server-*.log"))
	for _, path := range logs {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if bytes.Contains(content, []byte("server exited unexpectedly")) {
			t.Fatalf("tmux server exited unexpectedly; see %s", path)
		}
	}
}

// CapturePane returns the visible contents of target.
func CapturePane(t *testing.T, socket, target string) (string, error) {
	t.Helper()
	out, err := tmuxCommand(socket, "capture-pane", "-p", "-t", target).Output()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1:
		return "", ErrPaneUnavailable
	case err != nil:
		return "", fmt.Errorf("capture-pane %s: %w", target, err)
	}
	return string(out), nil
}

// Tmux runs a tmux command against socket and returns its trimmed output.
func Tmux(t *testing.T, socket string, args ...string) string {
	t.Helper()
	out, err := tmuxCommand(socket, args...).Output()
	if err != nil {
		t.Fatalf("tmux %s: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out))
}

func tmuxCommand(socket string, args ...string) *exec.Cmd {
	cmd := exec.Command("tmux", append([]string{"-S", socket}, args...)...)
	cmd.Env = isolatedEnv(socket)
	return cmd
}

// isolatedEnv strips tmux client variables so commands never reach the
// tmux server running the tests.
func isolatedEnv(socket string) []string {
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") || strings.HasPrefix(entry, "TMUX_PANE=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, "TMUX=")
	if socket != "" {
		env = append(env, "TMUX_TMPDIR="+filepath.Dir(socket))
	}
	return env
}

func killServer(ctx context.Context, socket string) error {
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}
