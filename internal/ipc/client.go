package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
)

// Send delivers req to the server at socketPath and collects its responses.
// A server-reported failure is returned as *RemoteError alongside the
// responses received before it.
func Send(ctx context.Context, socketPath string, req Request) ([]Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", socketPath, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	var (
		responses []Response
		remote    error
	)
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLine)
	for scanner.Scan() {
		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			return responses, fmt.Errorf("decode response: %w", err)
		}
		switch resp.Type {
		case TypeDone:
			return responses, remote
		case TypeError:
			remote = &RemoteError{Message: resp.Data}
			continue
		}
		responses = append(responses, resp)
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return responses, ctx.Err()
		}
		return responses, fmt.Errorf("read response: %w", err)
	}
	if remote != nil {
		return responses, remote
	}
	return responses, fmt.Errorf("read response: %w", io.ErrUnexpectedEOF)
}

// IsRemote reports whether err was raised by the server for the request.
func IsRemote(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote)
}
