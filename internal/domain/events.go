package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ahrav/go-gradebook/pkg/events"
)

// EventType represents the type of event emitted by the system.
type EventType string

const (
	// EventTypeWeightsRejected is emitted when a dataset fails the course
	// weight check and the run ends with the error result.
	EventTypeWeightsRejected EventType = "report.weights_rejected"

	// EventTypeAveragesComputed is emitted once the derived relations exist.
	EventTypeAveragesComputed EventType = "report.averages_computed"

	// EventTypeReportAssembled is emitted when the nested report is built.
	EventTypeReportAssembled EventType = "report.assembled"
)

// CourseWeightSum is the total test weight declared for one course.
type CourseWeightSum struct {
	CourseID int64   `json:"course_id"`
	Sum      float64 `json:"sum"`
}

// EventEnvelope wraps report events with the metadata needed to deduplicate
// and correlate them.
type EventEnvelope struct {
	// IdempotencyKey is derived from the run id, the dataset digest and the
	// event type, so retries within a run produce the same key.
	IdempotencyKey string `json:"idempotency_key" validate:"required"`

	EventType  EventType `json:"event_type" validate:"required"`
	Version    int       `json:"version" validate:"required,min=1"`
	OccurredAt time.Time `json:"occurred_at" validate:"required"`

	WorkflowID string `json:"workflow_id" validate:"required"`
	RunID      string `json:"run_id" validate:"required"`

	// DatasetDigest identifies the input relations of the run.
	DatasetDigest string `json:"dataset_digest" validate:"required"`

	Payload  json.RawMessage `json:"payload" validate:"required"`
	Producer string          `json:"producer" validate:"required"`
}

// Validate checks if the event envelope meets all requirements.
func (e *EventEnvelope) Validate() error {
	return validate.Struct(e)
}

// ToEnvelope converts the domain event into the generic envelope accepted by
// event sinks. The idempotency key doubles as the event id so replays map to
// the same event.
func (e *EventEnvelope) ToEnvelope() events.Envelope {
	return events.Envelope{
		ID:             e.IdempotencyKey,
		Type:           string(e.EventType),
		Source:         e.Producer,
		Version:        fmt.Sprintf("%d.0.0", e.Version),
		Timestamp:      e.OccurredAt,
		IdempotencyKey: e.IdempotencyKey,
		WorkflowID:     e.WorkflowID,
		RunID:          e.RunID,
		Subject:        e.DatasetDigest,
		Payload:        e.Payload,
	}
}

// WeightsRejectedPayload lists the courses whose weights do not sum to 100.
type WeightsRejectedPayload struct {
	Violations []CourseWeightSum `json:"violations" validate:"required,min=1"`
}

// AveragesComputedPayload summarizes the derived relations.
type AveragesComputedPayload struct {
	CourseAverages int `json:"course_averages" validate:"min=0"`
	TotalAverages  int `json:"total_averages" validate:"min=0"`
	DroppedMarks   int `json:"dropped_marks" validate:"min=0"`
}

// ReportAssembledPayload summarizes the assembled report.
type ReportAssembledPayload struct {
	Students             int `json:"students" validate:"min=0"`
	StudentsWithoutMarks int `json:"students_without_marks" validate:"min=0"`
}

// EventMeta carries the run metadata shared by every event of a run.
type EventMeta struct {
	WorkflowID    string
	RunID         string
	DatasetDigest string
	Producer      string
	OccurredAt    time.Time
}

// GenerateIdempotencyKey creates a deterministic key for event deduplication:
// H(run_id || ":" || dataset_digest || ":" || event_type). Activity retries
// within a run share the key; a new run of the same dataset does not.
func GenerateIdempotencyKey(runID, datasetDigest string, eventType EventType) string {
	sum := sha256.Sum256([]byte(runID + ":" + datasetDigest + ":" + string(eventType)))
	return hex.EncodeToString(sum[:])
}

// NewWeightsRejectedEvent creates a report.weights_rejected event.
func NewWeightsRejectedEvent(meta EventMeta, violations []CourseWeightSum) (EventEnvelope, error) {
	payload := WeightsRejectedPayload{Violations: violations}
	if err := validate.Struct(payload); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid weights rejected payload: %w", err)
	}
	return newEvent(meta, EventTypeWeightsRejected, payload)
}

// NewAveragesComputedEvent creates a report.averages_computed event.
func NewAveragesComputedEvent(meta EventMeta, averages *Averages) (EventEnvelope, error) {
	payload := AveragesComputedPayload{
		CourseAverages: len(averages.CourseAverages),
		TotalAverages:  len(averages.TotalAverages),
		DroppedMarks:   averages.DroppedMarks,
	}
	return newEvent(meta, EventTypeAveragesComputed, payload)
}

// NewReportAssembledEvent creates a report.assembled event.
func NewReportAssembledEvent(meta EventMeta, report *Report) (EventEnvelope, error) {
	payload := ReportAssembledPayload{Students: len(report.Students)}
	for _, s := range report.Students {
		if !s.HasMarks() {
			payload.StudentsWithoutMarks++
		}
	}
	return newEvent(meta, EventTypeReportAssembled, payload)
}

func newEvent(meta EventMeta, eventType EventType, payload any) (EventEnvelope, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	occurredAt := meta.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	envelope := EventEnvelope{
		IdempotencyKey: GenerateIdempotencyKey(meta.RunID, meta.DatasetDigest, eventType),
		EventType:      eventType,
		Version:        1,
		OccurredAt:     occurredAt,
		WorkflowID:     meta.WorkflowID,
		RunID:          meta.RunID,
		DatasetDigest:  meta.DatasetDigest,
		Payload:        payloadJSON,
		Producer:       meta.Producer,
	}

	if err := envelope.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid event envelope: %w", err)
	}

	return envelope, nil
}
