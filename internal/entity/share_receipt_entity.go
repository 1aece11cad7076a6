package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShareReceipt records one successful import of a shared note.
type ShareReceipt struct {
	Id             uuid.UUID
	ReceiverId     uuid.UUID
	SharedBy       string
	SourceNoteId   string
	ReceivedNoteId uuid.UUID
	Payload        []byte
	CreatedAt      time.Time
}
