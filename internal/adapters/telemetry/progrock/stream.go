package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Stream)(nil)

// Stream is a progrock.Writer whose updates can be read back in order.
// Writes never block; updates queue until read.
type Stream struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []*progrock.StatusUpdate
	closed  bool
}

// NewStream creates an open Stream.
func NewStream() *Stream {
	s := &Stream{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// WriteStatus queues an update.
func (s *Stream) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return io.ErrClosedPipe
	}
	s.pending = append(s.pending, update)
	s.cond.Signal()
	return nil
}

// Read blocks until an update is available. It returns io.EOF once the
// stream is closed and drained.
func (s *Stream) Read() (*progrock.StatusUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.pending) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.pending) == 0 {
		return nil, io.EOF
	}
	update := s.pending[0]
	s.pending[0] = nil
	s.pending = s.pending[1:]
	return update, nil
}

// Close ends the stream. It is safe to call more than once.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
	return nil
}
