package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/tmux-tab-rename/internal/ipc"
	"github.com/atomicstack/tmux-tab-rename/internal/tmux"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath    string
	Session       string
	IPCSocket     string
	PollInterval  time.Duration
	MetricsListen string
}

// Target is a Config with every location resolved.
type Target struct {
	SocketPath string
	Session    string
	IPCSocket  string
}

var (
	resolveSocketPath = tmux.ResolveSocketPath
	currentSession    = tmux.CurrentSession
)

// Resolve fills in the tmux socket, the session to serve and the command
// socket from the environment where cfg leaves them empty.
func Resolve(cfg Config) (Target, error) {
	socketPath, err := resolveSocketPath(cfg.SocketPath)
	if err != nil {
		return Target{}, fmt.Errorf("resolve socket path: %w", err)
	}
	session := cfg.Session
	if session == "" {
		session, err = currentSession(socketPath)
		if err != nil {
			if errors.Is(err, tmux.ErrNoSession) {
				return Target{}, fmt.Errorf("%w (pass --session or run inside tmux)", err)
			}
			return Target{}, err
		}
	}
	ipcSocket := cfg.IPCSocket
	if ipcSocket == "" {
		ipcSocket = ipc.DefaultSocketPath(session)
	}
	return Target{SocketPath: socketPath, Session: session, IPCSocket: ipcSocket}, nil
}
