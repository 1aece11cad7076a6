package client

import "time"

type User struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type NoteNotebook struct {
	Id   string `json:"_id"`
	Name string `json:"name"`
}

type Note struct {
	Id       string        `json:"_id"`
	User     string        `json:"user"`
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Tag      string        `json:"tag"`
	Date     time.Time     `json:"date"`
	Notebook *NoteNotebook `json:"notebook"`
}

// NotebookId is empty when the notebook was not resolved.
func (n Note) NotebookId() string {
	if n.Notebook == nil {
		return ""
	}
	return n.Notebook.Id
}

type Notebook struct {
	Id        string    `json:"_id"`
	User      string    `json:"user"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	NoteCount int64     `json:"noteCount"`
}

// ShareData is the payload carried by a share QR code.
type ShareData struct {
	NoteId       string     `json:"noteId"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tag          string     `json:"tag"`
	OriginalDate *time.Time `json:"originalDate,omitempty"`
	SharedBy     string     `json:"sharedBy"`
}

type NoteInput struct {
	Title      string  `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Tag        string  `json:"tag,omitempty"`
	NotebookId string  `json:"notebookId,omitempty"`
}
