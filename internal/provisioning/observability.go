package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging surface used by phases.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// provisioning and teardown.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string // Phase name (e.g. "address", "instance", "firewall")
	Resource  string // Resource name if applicable
	Message   string
	Timestamp time.Time
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists and was left as-is.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates a resource operation failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted (or was already gone).
	EventResourceDeleted EventType = "resource.deleted"
	// EventResourceSkipped indicates a resource operation was intentionally skipped.
	EventResourceSkipped EventType = "resource.skipped"

	// EventValidationWarning indicates a non-fatal configuration mismatch.
	EventValidationWarning EventType = "validation.warning"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

// formatEvent formats an event for console output.
func formatEvent(event Event) string {
	var parts []string
	parts = append(parts, string(event.Type))
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	return strings.Join(parts, " ")
}

// RecordingObserver implements Observer by recording events in memory.
// Used in tests to assert on the exact event sequence a phase emits.
type RecordingObserver struct {
	Events   []Event
	Messages []string
}

// Printf implements the Logger interface.
func (o *RecordingObserver) Printf(format string, v ...interface{}) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, v...))
}

// Event implements the Observer interface.
func (o *RecordingObserver) Event(event Event) {
	o.Events = append(o.Events, event)
}

// EventsOfType returns the recorded events matching the given type.
func (o *RecordingObserver) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range o.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
