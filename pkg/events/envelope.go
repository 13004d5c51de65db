// Package events carries report events from the pipeline stages to wherever
// they are recorded. Domain packages build the payloads; this package only
// knows the envelope around them and where it goes.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope is the transport form of a report event.
type Envelope struct {
	ID   string `json:"id"`
	Type string `json:"type"` // e.g. "report.weights_rejected"

	// Source names the producing stage, e.g. "activity.assemble_report".
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey is equal for retries of the same event within a run.
	IdempotencyKey string `json:"idempotency_key"`

	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`

	// Subject is the dataset digest of the run.
	Subject string `json:"subject,omitempty"`

	Payload json.RawMessage `json:"payload"`
}

// EventSink records envelopes. Callers treat Append as best-effort and
// never fail a report because of it; sinks may drop envelopes whose
// idempotency key they have already recorded.
type EventSink interface {
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink discards every envelope.
type NoOpEventSink struct{}

// Append implements EventSink.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error {
	return nil
}

// NewNoOpEventSink returns a sink that discards everything.
func NewNoOpEventSink() EventSink {
	return &NoOpEventSink{}
}
