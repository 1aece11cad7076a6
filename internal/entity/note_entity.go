package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultNoteTag  = "General"
	SharedNoteTag   = "Shared"
	SharedTitleMark = " (Shared)"
)

type Note struct {
	Id         uuid.UUID
	Title      string
	Content    string
	Tag        string
	NotebookId uuid.UUID
	UserId     uuid.UUID
	Date       time.Time

	// Resolved on reads; not persisted with the note.
	Notebook *NotebookRef
}

// NotebookRef is the notebook summary attached to listed notes.
type NotebookRef struct {
	Id   uuid.UUID
	Name string
}
