package notify

import (
	"context"
	"time"
)

// EventType represents the type of workflow event.
type EventType string

// Event type constants.
const (
	EventRunStarted    EventType = "run_started"
	EventRunCompleted  EventType = "run_completed"
	EventRunFailed     EventType = "run_failed"
	EventStepCompleted EventType = "step_completed"
	EventSummary       EventType = "summary"
)

// Severity constants for events.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Event describes a workflow event for notification.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id"`
	Step      string         `json:"step,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Notifier renders notifications about workflow events.
type Notifier interface {
	// Notify sends a notification. Implementations should handle their
	// own failures gracefully (log, don't crash the run).
	Notify(ctx context.Context, event Event) error
}

// Step builds a step-completed info event.
func Step(runID, step, message string) Event {
	return Event{
		Type:      EventStepCompleted,
		RunID:     runID,
		Step:      step,
		Message:   message,
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
	}
}

// Failure builds a run-failed error event.
func Failure(runID, step, message string) Event {
	return Event{
		Type:      EventRunFailed,
		RunID:     runID,
		Step:      step,
		Message:   message,
		Severity:  SeverityError,
		Timestamp: time.Now(),
	}
}
