package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "INTAKE_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation used by publishers and subscribers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeIntakeCompleted = "INTAKE_COMPLETED"
	TypeIntakeRejected  = "INTAKE_REJECTED"
)

// NewIntakeCompletedEvent is emitted once a questioning session reaches its summary.
func NewIntakeCompletedEvent(sessionID string, data map[string]interface{}) Event {
	payload := map[string]interface{}{
		"session_id": sessionID,
	}
	for k, v := range data {
		payload[k] = v
	}
	return BaseEvent{
		Type:       TypeIntakeCompleted,
		Data:       payload,
		OccurredAt: time.Now(),
	}
}

// NewIntakeRejectedEvent is emitted when a description is refused up front.
func NewIntakeRejectedEvent(reason string) Event {
	return BaseEvent{
		Type: TypeIntakeRejected,
		Data: map[string]interface{}{
			"reason": reason,
		},
		OccurredAt: time.Now(),
	}
}
