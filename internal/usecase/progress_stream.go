package usecase

import (
	"sync"

	"github.com/menuscan/backend/internal/domain"
)

// progressBuffer fits every checkpoint of one extraction
var progressBuffer = len(domain.StagePercent)

// ProgressStream fans progress events of a single extraction out to any number of subscribers.
// Publishing never blocks: a subscriber that stops reading misses events.
// A nil *ProgressStream is valid and discards everything.
type ProgressStream struct {
	mu          sync.Mutex
	subscribers []chan domain.ProgressEvent
	lastPercent int
	closed      bool
}

// NewProgressStream creates an open stream
func NewProgressStream() *ProgressStream {
	return &ProgressStream{}
}

// Subscribe returns a channel receiving every later event. It is closed when the extraction ends.
func (s *ProgressStream) Subscribe() <-chan domain.ProgressEvent {
	ch := make(chan domain.ProgressEvent, progressBuffer)
	if s == nil {
		close(ch)
		return ch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// publish delivers an event if it moves progress forward
func (s *ProgressStream) publish(event domain.ProgressEvent) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || event.Percent <= s.lastPercent {
		return
	}
	s.lastPercent = event.Percent

	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close ends the stream and closes every subscription. Safe to call more than once.
func (s *ProgressStream) Close() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil
}
