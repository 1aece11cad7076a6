package dto

import "time"

// ShareData is the payload encoded into a share QR code. It carries the
// sharer's id but no notebook reference or user record.
type ShareData struct {
	NoteId       string     `json:"noteId"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tag          string     `json:"tag"`
	OriginalDate *time.Time `json:"originalDate,omitempty"`
	SharedBy     string     `json:"sharedBy"`
}
