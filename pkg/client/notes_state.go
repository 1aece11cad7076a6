package client

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type SortOrder int

const (
	SortByDate SortOrder = iota
	SortByTitle
)

// NoteFilter narrows a note listing. Zero values match everything.
type NoteFilter struct {
	Search     string
	Tag        string
	NotebookId string
	Sort       SortOrder
}

// NoteAPI is the part of Client that NotesState needs.
type NoteAPI interface {
	ListNotes(ctx context.Context, notebookId string) ([]Note, error)
	CreateNote(ctx context.Context, in NoteInput) (*Note, error)
	UpdateNote(ctx context.Context, id string, in NoteInput) (*Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// NotesState caches the signed-in user's notes. Mutations go to the server
// first and the cache takes the server's record.
type NotesState struct {
	api NoteAPI

	mu     sync.RWMutex
	notes  []Note
	filter NoteFilter
}

func NewNotesState(api NoteAPI) *NotesState {
	return &NotesState{api: api}
}

func (s *NotesState) Fetch(ctx context.Context, notebookId string) error {
	notes, err := s.api.ListNotes(ctx, notebookId)
	if err != nil {
		return err
	}
	s.Set(notes)
	return nil
}

// Set replaces the cache.
func (s *NotesState) Set(notes []Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append([]Note(nil), notes...)
}

func (s *NotesState) All() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Note(nil), s.notes...)
}

func (s *NotesState) Create(ctx context.Context, in NoteInput) (*Note, error) {
	note, err := s.api.CreateNote(ctx, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.notes = append([]Note{*note}, s.notes...)
	s.mu.Unlock()
	return note, nil
}

func (s *NotesState) Update(ctx context.Context, id string, in NoteInput) (*Note, error) {
	note, err := s.api.UpdateNote(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].Id == id {
			s.notes[i] = *note
		}
	}
	s.mu.Unlock()
	return note, nil
}

func (s *NotesState) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	s.mu.Unlock()
	return nil
}

func (s *NotesState) SetFilter(f NoteFilter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Filtered applies the filter set with SetFilter.
func (s *NotesState) Filtered() []Note {
	s.mu.RLock()
	notes := append([]Note(nil), s.notes...)
	filter := s.filter
	s.mu.RUnlock()
	return FilterNotes(notes, filter)
}

// Tags lists the distinct non-empty tags in first-seen order.
func (s *NotesState) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var tags []string
	for _, n := range s.notes {
		if n.Tag == "" {
			continue
		}
		if _, ok := seen[n.Tag]; ok {
			continue
		}
		seen[n.Tag] = struct{}{}
		tags = append(tags, n.Tag)
	}
	return tags
}

// FilterNotes keeps the notes matching every set criterion. The search term
// is matched case-insensitively against title, content and tag.
func FilterNotes(notes []Note, f NoteFilter) []Note {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) &&
			!strings.Contains(strings.ToLower(n.Tag), term) {
			continue
		}
		if f.Tag != "" && n.Tag != f.Tag {
			continue
		}
		if f.NotebookId != "" && n.NotebookId() != f.NotebookId {
			continue
		}
		out = append(out, n)
	}

	switch f.Sort {
	case SortByTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date.After(out[j].Date)
		})
	}
	return out
}
