// Package ipc carries command requests from CLI invocations to the serving
// process over a unix socket. Each connection holds one request: the client
// writes a JSON line, the server streams JSON response lines and closes the
// connection after a "done" line.
package ipc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	TypeOutput  = "output"
	TypeUnblock = "unblock"
	TypeError   = "error"
	TypeDone    = "done"
)

// maxLine bounds a single request line.
const maxLine = 64 * 1024

// Request is one named command. A nil Payload means no payload was sent.
type Request struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Payload *string `json:"payload,omitempty"`
}

// Response is one line streamed back to the client.
type Response struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Data string `json:"data,omitempty"`
}

// RemoteError is a failure reported by the server for a request.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Outputs returns the data of every output response for name, in order.
func Outputs(responses []Response, name string) []string {
	var out []string
	for _, r := range responses {
		if r.Type == TypeOutput && r.Name == name {
			out = append(out, r.Data)
		}
	}
	return out
}

// DefaultSocketPath returns the per-user socket for serving session.
func DefaultSocketPath(session string) string {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = filepath.Join(os.TempDir(), fmt.Sprintf("tmux-tab-rename-%d", os.Getuid()))
	}
	name := strings.NewReplacer("/", "_", string(os.PathSeparator), "_", " ", "_").Replace(session)
	if name == "" {
		name = "default"
	}
	return filepath.Join(base, "tmux-tab-rename", name+".sock")
}
