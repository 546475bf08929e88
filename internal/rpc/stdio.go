package rpc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/logging"
)

// TransportStdio labels messages received on stdin
const TransportStdio = "stdio"

// MaxMessageSize bounds a single newline-delimited frame
const MaxMessageSize = 16 << 20

// StdioServer serves newline-delimited JSON-RPC over a reader/writer pair.
// Requests are handled one at a time in arrival order.
type StdioServer struct {
	handler *Handler
	in      io.Reader
	out     io.Writer
	logger  *logging.Logger
	mu      sync.Mutex
}

// NewStdioServer creates a server reading in and writing out
func NewStdioServer(handler *Handler, in io.Reader, out io.Writer, logger *logging.Logger) *StdioServer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StdioServer{handler: handler, in: in, out: out, logger: logger}
}

// Serve processes frames until the input ends or ctx is cancelled.
// End of input is a clean shutdown and returns nil.
func (s *StdioServer) Serve(ctx context.Context) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxMessageSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
				default:
				}
				s.logger.Info("stdin closed, stopping")
				return nil
			}
			if err := s.handle(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (s *StdioServer) handle(ctx context.Context, line []byte) error {
	resp := s.handler.HandleMessage(ctx, TransportStdio, line)
	if resp == nil {
		return nil
	}

	data, err := Encode(resp)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		return nil
	}
	return s.write(data)
}

func (s *StdioServer) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
