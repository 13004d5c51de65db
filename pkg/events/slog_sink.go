package events

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultSeenCapacity is the number of idempotency keys a SlogEventSink
// remembers before forgetting the oldest.
const DefaultSeenCapacity = 4096

// SlogEventSink writes every event as a structured log record.
// An event whose idempotency key is among the most recent keys seen by the
// sink is skipped.
type SlogEventSink struct {
	logger   *slog.Logger
	capacity int

	mu    sync.Mutex
	seen  map[string]struct{}
	order []string // insertion order of seen, oldest first
}

// NewSlogEventSink creates a sink logging through logger, or slog.Default()
// when logger is nil, remembering DefaultSeenCapacity keys.
func NewSlogEventSink(logger *slog.Logger) *SlogEventSink {
	return NewSlogEventSinkWithCapacity(logger, DefaultSeenCapacity)
}

// NewSlogEventSinkWithCapacity is NewSlogEventSink with an explicit bound on
// the remembered keys. A capacity below 1 is treated as 1.
func NewSlogEventSinkWithCapacity(logger *slog.Logger, capacity int) *SlogEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	if capacity < 1 {
		capacity = 1
	}
	return &SlogEventSink{
		logger:   logger.With("component", "events"),
		capacity: capacity,
		seen:     make(map[string]struct{}, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Append implements EventSink.
func (s *SlogEventSink) Append(ctx context.Context, envelope Envelope) error {
	if !s.remember(envelope.IdempotencyKey) {
		return nil
	}

	s.logger.InfoContext(ctx, "event",
		"type", envelope.Type,
		"source", envelope.Source,
		"workflow_id", envelope.WorkflowID,
		"run_id", envelope.RunID,
		"subject", envelope.Subject,
		"payload", string(envelope.Payload))
	return nil
}

// remember records key and reports whether it was new.
func (s *SlogEventSink) remember(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[key]; dup {
		return false
	}
	if len(s.order) == s.capacity {
		delete(s.seen, s.order[0])
		s.order = append(s.order[:0], s.order[1:]...)
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
	return true
}

// Remembered returns the number of keys currently tracked.
func (s *SlogEventSink) Remembered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
