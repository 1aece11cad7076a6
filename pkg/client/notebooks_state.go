package client

import (
	"context"
	"sync"
)

type NotebookAPI interface {
	ListNotebooks(ctx context.Context) ([]Notebook, error)
	CreateNotebook(ctx context.Context, name string) (*Notebook, error)
	RenameNotebook(ctx context.Context, id, name string) (*Notebook, error)
	DeleteNotebook(ctx context.Context, id string) (string, int64, error)
}

type NotebooksState struct {
	api NotebookAPI

	mu        sync.RWMutex
	notebooks []Notebook
}

func NewNotebooksState(api NotebookAPI) *NotebooksState {
	return &NotebooksState{api: api}
}

func (s *NotebooksState) Fetch(ctx context.Context) error {
	notebooks, err := s.api.ListNotebooks(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.notebooks = notebooks
	s.mu.Unlock()
	return nil
}

func (s *NotebooksState) All() []Notebook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notebook(nil), s.notebooks...)
}

// Default returns the notebook new and imported notes land in.
func (s *NotebooksState) Default() (Notebook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, nb := range s.notebooks {
		if nb.IsDefault {
			return nb, true
		}
	}
	return Notebook{}, false
}

func (s *NotebooksState) Find(id string) (Notebook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, nb := range s.notebooks {
		if nb.Id == id {
			return nb, true
		}
	}
	return Notebook{}, false
}

func (s *NotebooksState) Create(ctx context.Context, name string) (*Notebook, error) {
	nb, err := s.api.CreateNotebook(ctx, name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.notebooks = append(s.notebooks, *nb)
	s.mu.Unlock()
	return nb, nil
}

func (s *NotebooksState) Rename(ctx context.Context, id, name string) (*Notebook, error) {
	nb, err := s.api.RenameNotebook(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.notebooks {
		if s.notebooks[i].Id == id {
			s.notebooks[i] = *nb
		}
	}
	s.mu.Unlock()
	return nb, nil
}

// Delete removes the notebook and credits its notes to the default one, as
// the server does. Callers holding a NotesState should refetch it.
func (s *NotebooksState) Delete(ctx context.Context, id string) (string, error) {
	message, moved, err := s.api.DeleteNotebook(ctx, id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	kept := s.notebooks[:0]
	for _, nb := range s.notebooks {
		if nb.Id != id {
			kept = append(kept, nb)
		}
	}
	s.notebooks = kept
	for i := range s.notebooks {
		if s.notebooks[i].IsDefault {
			s.notebooks[i].NoteCount += moved
		}
	}
	s.mu.Unlock()
	return message, nil
}
