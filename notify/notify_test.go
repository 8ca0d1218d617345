package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf)

	event := Step("run-1", "merge", "Merged branch 'develop' into 'debian-develop'")
	if err := n.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	got := buf.String()
	if got != event.Message+"\n" {
		t.Errorf("output = %q, want %q", got, event.Message+"\n")
	}
	// A plain buffer is not a terminal, so no escape codes.
	if strings.Contains(got, "\x1b[") {
		t.Error("output contains ANSI escapes for non-terminal writer")
	}
}

func TestStepAndFailureEvents(t *testing.T) {
	step := Step("run-1", "clone", "cloned")
	if step.Type != EventStepCompleted || step.Severity != SeverityInfo {
		t.Errorf("Step event = %+v", step)
	}
	if step.Timestamp.IsZero() {
		t.Error("Step event missing timestamp")
	}

	fail := Failure("run-1", "merge", "merge conflict")
	if fail.Type != EventRunFailed || fail.Severity != SeverityError {
		t.Errorf("Failure event = %+v", fail)
	}
}

type recordingNotifier struct {
	events []Event
	err    error
}

func (r *recordingNotifier) Notify(ctx context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestMultiNotifier(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{err: errors.New("boom")}
	c := &recordingNotifier{}

	n := NewMultiNotifier(a, b, c)
	err := n.Notify(context.Background(), Step("run-1", "tag", "tagged"))

	if err == nil {
		t.Error("expected error from failing notifier")
	}
	for i, r := range []*recordingNotifier{a, b, c} {
		if len(r.events) != 1 {
			t.Errorf("notifier %d received %d events, want 1", i, len(r.events))
		}
	}
}

func TestNopNotifier(t *testing.T) {
	if err := (NopNotifier{}).Notify(context.Background(), Event{}); err != nil {
		t.Errorf("NopNotifier returned error: %v", err)
	}
}
