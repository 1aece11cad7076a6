package events

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	UserRegistered  = "USER_REGISTERED"
	NoteCreated     = "NOTE_CREATED"
	NoteDeleted     = "NOTE_DELETED"
	NotebookDeleted = "NOTEBOOK_DELETED"
	NoteShared      = "NOTE_SHARED"
	NoteReceived    = "NOTE_RECEIVED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "NOTE_RECEIVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
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

// String reads a string field from the payload.
func (e BaseEvent) String(key string) string {
	v, _ := e.Data[key].(string)
	return v
}

var ErrMissingType = errors.New("event type is missing")

// Marshal encodes any Event as a self-describing envelope so the type
// survives transports that do not carry it separately.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, err
	}
	if e.Type == "" {
		return BaseEvent{}, ErrMissingType
	}
	if e.Data == nil {
		e.Data = map[string]interface{}{}
	}
	return e, nil
}
