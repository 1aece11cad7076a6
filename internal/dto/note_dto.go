package dto

import (
	"time"

	"github.com/google/uuid"
)

// Field names follow the web frontend's record shape (_id, nested notebook).

type CreateNoteRequest struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content"`
	Tag        string `json:"tag"`
	NotebookId string `json:"notebookId"`
}

// UpdateNoteRequest carries only the fields to replace. Content is a pointer
// so an explicit empty string still clears it.
type UpdateNoteRequest struct {
	Id         uuid.UUID `json:"-"`
	Title      string    `json:"title"`
	Content    *string   `json:"content"`
	Tag        string    `json:"tag"`
	NotebookId string    `json:"notebookId"`
}

type NoteNotebookResponse struct {
	Id   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

type NoteResponse struct {
	Id       uuid.UUID             `json:"_id"`
	User     uuid.UUID             `json:"user"`
	Title    string                `json:"title"`
	Content  string                `json:"content"`
	Tag      string                `json:"tag"`
	Date     time.Time             `json:"date"`
	Notebook *NoteNotebookResponse `json:"notebook"`
}
