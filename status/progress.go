package status

import "sync"

// Progress is a single progress notification from a pipeline.
type Progress struct {
	Percent int
	Label   string
}

// Stream carries progress from a pipeline to its consumer. It holds at most
// one pending notification: sending while one is unread replaces it, so the
// producer never blocks and the consumer always sees the latest value.
//
// All methods are safe on a nil *Stream, which discards notifications.
type Stream struct {
	mu     sync.Mutex
	ch     chan Progress
	closed bool
}

// NewStream returns an open stream.
func NewStream() *Stream {
	return &Stream{ch: make(chan Progress, 1)}
}

// C returns the receive side of the stream. It is closed by Close.
func (s *Stream) C() <-chan Progress {
	if s == nil {
		return nil
	}
	return s.ch
}

// Send publishes a notification, replacing any unread one.
func (s *Stream) Send(p Progress) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- p
}

// Report is shorthand for Send(Progress{percent, label}).
func (s *Stream) Report(percent int, label string) {
	s.Send(Progress{Percent: percent, Label: label})
}

// Close closes the stream. Later sends are discarded. It is safe to call
// Close more than once.
func (s *Stream) Close() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
