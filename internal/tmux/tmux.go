package tmux

import (
	"os/exec"
	"strings"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// PluginOption is the pane user option that keeps a pane out of the index.
const PluginOption = "@tab_rename_plugin"

type tmuxClient interface {
	Command(parts ...string) (string, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}
)

// One control-mode connection is shared by every caller. Pollers and the
// rename path run concurrently, so access is serialised through clientMu.
var (
	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string
)

// withClient runs fn against the cached client for socketPath, connecting on
// first use. A failing fn drops the connection so the next call reconnects.
func withClient(socketPath string, fn func(tmuxClient) error) error {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil && cachedSocket != socketPath {
		_ = cachedClient.Close()
		cachedClient = nil
	}
	if cachedClient == nil {
		client, err := newTmux(socketPath)
		if err != nil {
			return err
		}
		cachedClient = client
		cachedSocket = socketPath
	}
	if err := fn(cachedClient); err != nil {
		_ = cachedClient.Close()
		cachedClient = nil
		cachedSocket = ""
		return err
	}
	return nil
}

// Shutdown closes the shared control-mode connection, if any.
func Shutdown() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil {
		_ = cachedClient.Close()
	}
	cachedClient = nil
	cachedSocket = ""
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

func splitLines(output string) []string {
	raw := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
