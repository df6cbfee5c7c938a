package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/tmux-tab-rename/internal/logging/events"
)

const writeTimeout = 2 * time.Second

// Call is a request waiting to be handled. The handler writes replies to
// Pipe and must call Finish exactly once.
type Call struct {
	Request Request
	Pipe    *Pipe
	done    chan error
}

// Finish completes the call. err, if any, is reported to the client.
func (c *Call) Finish(err error) {
	c.done <- err
}

// Pipe streams responses for one request.
type Pipe struct {
	id   string
	conn net.Conn
	enc  *json.Encoder
	err  error
}

func newPipe(id string, conn net.Conn) *Pipe {
	return &Pipe{id: id, conn: conn, enc: json.NewEncoder(conn)}
}

func (p *Pipe) Output(name, data string) {
	events.Pipe.Output(p.id, name, data)
	p.write(Response{Type: TypeOutput, Name: name, Data: data})
}

func (p *Pipe) Unblock(name string) {
	events.Pipe.Unblock(p.id, name)
	p.write(Response{Type: TypeUnblock, Name: name})
}

func (p *Pipe) write(resp Response) {
	if p.err != nil {
		return
	}
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := p.enc.Encode(resp); err != nil {
		p.err = err
		events.Pipe.Error(p.id, err)
	}
}

// Server accepts requests on a unix socket and hands them out as Calls.
type Server struct {
	path     string
	listener net.Listener
	calls    chan *Call

	wg       sync.WaitGroup
	shutdown sync.Once
	closed   chan struct{}
}

// Listen binds path, replacing a stale socket left by an earlier run.
func Listen(path string) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	if st, err := os.Lstat(path); err == nil {
		if st.Mode()&os.ModeSocket == 0 {
			return nil, fmt.Errorf("socket path exists and is not unix socket: %s", path)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat socket path: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen uds: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		ln.Close() //nolint:errcheck
		return nil, fmt.Errorf("chmod socket: %w", err)
	}
	return &Server{
		path:     path,
		listener: ln,
		calls:    make(chan *Call),
		closed:   make(chan struct{}),
	}, nil
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Calls delivers accepted requests. Receive from it on the goroutine that
// owns the handler state.
func (s *Server) Calls() <-chan *Call {
	return s.calls
}

// Serve accepts connections until ctx ends or Close is called.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
			s.Close() //nolint:errcheck
		case <-s.closed:
		}
	}()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closed:
				s.wg.Wait()
				return nil
			default:
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.wg.Add(1)
		go s.handle(ctx, conn)
	}
}

// Close stops accepting and removes the socket.
func (s *Server) Close() error {
	var err error
	s.shutdown.Do(func() {
		close(s.closed)
		err = s.listener.Close()
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	})
	return err
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	req, err := readRequest(conn)
	if err != nil {
		events.Pipe.Error("", err)
		newPipe("", conn).write(Response{Type: TypeError, Data: err.Error()})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	events.Pipe.Accept(req.ID, req.Name)

	call := &Call{Request: req, Pipe: newPipe(req.ID, conn), done: make(chan error, 1)}
	select {
	case s.calls <- call:
	case <-ctx.Done():
		return
	case <-s.closed:
		return
	}

	var result error
	select {
	case result = <-call.done:
	case <-ctx.Done():
		return
	case <-s.closed:
		return
	}
	if result != nil {
		call.Pipe.write(Response{Type: TypeError, Data: result.Error()})
	}
	call.Pipe.write(Response{Type: TypeDone})
	events.Pipe.Done(req.ID)
}

func readRequest(conn net.Conn) (Request, error) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	reader := bufio.NewReaderSize(conn, 4096)
	var line []byte
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			return Request{}, fmt.Errorf("read request: %w", err)
		}
		line = append(line, chunk...)
		if len(line) > maxLine {
			return Request{}, fmt.Errorf("read request: line exceeds %d bytes", maxLine)
		}
		if !isPrefix {
			break
		}
	}
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if req.Name == "" {
		return Request{}, errors.New("decode request: missing name")
	}
	return req, nil
}
