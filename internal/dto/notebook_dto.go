package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Name string `json:"name"`
}

type UpdateNotebookRequest struct {
	Id   uuid.UUID `json:"-"`
	Name string    `json:"name"`
}

type NotebookResponse struct {
	Id        uuid.UUID `json:"_id"`
	User      uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	NoteCount int64     `json:"noteCount"`
}

type DeleteNotebookResponse struct {
	Message    string `json:"message"`
	MovedNotes int64  `json:"movedNotes"`
}

type NotebookNotesResponse struct {
	Notebook   string          `json:"notebook"`
	NotebookId uuid.UUID       `json:"notebookId"`
	Notes      []*NoteResponse `json:"notes"`
}
