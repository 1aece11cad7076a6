package entity

import "time"

const (
	NotificationNoteImported = "NOTE_IMPORTED"
	NotificationNoteReceived = "NOTE_RECEIVED"
	NotificationSync         = "SYNC"
)

// Notification is a realtime message pushed to a user's connected devices.
// It is not persisted.
type Notification struct {
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}
