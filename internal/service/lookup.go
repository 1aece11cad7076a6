package service

import (
	"context"

	"notestack-be/internal/dto"
	"notestack-be/internal/entity"
	"notestack-be/internal/pkg/apperror"
	"notestack-be/internal/repository/memory"
	"notestack-be/internal/repository/specification"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/pkg/access"

	"github.com/google/uuid"
)

const internalErrorMessage = "Internal Server Error"

// findOwnedNotebook distinguishes a missing notebook (404) from one owned by
// somebody else (401).
func findOwnedNotebook(ctx context.Context, uow unitofwork.UnitOfWork, verifier *access.Verifier, userId, id uuid.UUID, action string) (*entity.Notebook, error) {
	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	if notebook == nil {
		return nil, apperror.NotFound("Notebook not found")
	}
	if err := verifier.RequireOwner(notebook.UserId, userId, action, "notebook"); err != nil {
		return nil, err
	}
	return notebook, nil
}

func findOwnedNote(ctx context.Context, uow unitofwork.UnitOfWork, verifier *access.Verifier, userId, id uuid.UUID, action string) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id}, specification.WithNotebook{})
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}
	if err := verifier.RequireOwner(note.UserId, userId, action, "note"); err != nil {
		return nil, err
	}
	return note, nil
}

// resolveDefaultNotebook returns the user's default notebook id, served from
// the cache when possible.
func resolveDefaultNotebook(ctx context.Context, uow unitofwork.UnitOfWork, cache *memory.DefaultNotebookCache, userId uuid.UUID) (uuid.UUID, error) {
	if cache != nil {
		if id, ok := cache.Get(userId); ok {
			return id, nil
		}
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.DefaultNotebook{},
	)
	if err != nil {
		return uuid.Nil, apperror.Internal(internalErrorMessage, err)
	}
	if notebook == nil {
		return uuid.Nil, apperror.NotFound("Default notebook not found")
	}

	if cache != nil {
		cache.Save(userId, notebook.Id)
	}
	return notebook.Id, nil
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	res := &dto.NoteResponse{
		Id:      note.Id,
		User:    note.UserId,
		Title:   note.Title,
		Content: note.Content,
		Tag:     note.Tag,
		Date:    note.Date,
	}
	if note.Notebook != nil {
		res.Notebook = &dto.NoteNotebookResponse{Id: note.Notebook.Id, Name: note.Notebook.Name}
	}
	return res
}

func toNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	out := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteResponse(note))
	}
	return out
}

func toNotebookResponse(notebook *entity.Notebook, noteCount int64) *dto.NotebookResponse {
	return &dto.NotebookResponse{
		Id:        notebook.Id,
		User:      notebook.UserId,
		Name:      notebook.Name,
		IsDefault: notebook.IsDefault,
		CreatedAt: notebook.CreatedAt,
		NoteCount: noteCount,
	}
}
