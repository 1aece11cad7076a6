package service

import (
	"context"
	"strings"
	"time"

	"notestack-be/internal/dto"
	"notestack-be/internal/entity"
	"notestack-be/internal/pkg/apperror"
	"notestack-be/internal/repository/memory"
	"notestack-be/internal/repository/specification"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/pkg/access"
	"notestack-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	GetAll(ctx context.Context, userId uuid.UUID, notebookId *uuid.UUID) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	verifier         *access.Verifier
	defaultNotebooks *memory.DefaultNotebookCache
	publisherService IPublisherService
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	verifier *access.Verifier,
	defaultNotebooks *memory.DefaultNotebookCache,
	publisherService IPublisherService,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		verifier:         verifier,
		defaultNotebooks: defaultNotebooks,
		publisherService: publisherService,
	}
}

// GetAll lists the user's notes newest first, optionally narrowed to one
// notebook. Filtering by a foreign notebook is an authorization error.
func (c *noteService) GetAll(ctx context.Context, userId uuid.UUID, notebookId *uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.WithNotebook{},
		specification.NewestFirst{},
	}
	if notebookId != nil {
		if _, err := findOwnedNotebook(ctx, uow, c.verifier, userId, *notebookId, "access"); err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByNotebookID{NotebookID: *notebookId})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	return toNoteResponses(notes), nil
}

// targetNotebook resolves the notebook a note is written to: the requested
// one when given and owned, else the default notebook.
func (c *noteService) targetNotebook(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, raw string, action string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return resolveDefaultNotebook(ctx, uow, c.defaultNotebooks, userId)
	}

	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid notebook ID")
	}
	notebook, err := findOwnedNotebook(ctx, uow, c.verifier, userId, id, action)
	if err != nil {
		return uuid.Nil, err
	}
	return notebook.Id, nil
}

func (c *noteService) reload(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id}, specification.WithNotebook{})
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if req.Title == "" {
		return nil, apperror.Validation("Title is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebookId, err := c.targetNotebook(ctx, uow, userId, req.NotebookId, "access")
	if err != nil {
		return nil, err
	}

	tag := req.Tag
	if tag == "" {
		tag = entity.DefaultNoteTag
	}

	note := &entity.Note{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		Tag:        tag,
		NotebookId: notebookId,
		UserId:     userId,
		Date:       time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	c.publisherService.Publish(ctx, events.New(events.NoteCreated, map[string]interface{}{
		"user_id":     userId.String(),
		"note_id":     note.Id.String(),
		"notebook_id": notebookId.String(),
	}))

	return c.reload(ctx, uow, note.Id)
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := findOwnedNote(ctx, uow, c.verifier, userId, id, "access")
	if err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

// Update replaces title and tag only when non-empty, content whenever it is
// present, and moves the note when a notebook is named. The target notebook
// is checked before the note itself.
func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	var notebookId uuid.UUID
	if strings.TrimSpace(req.NotebookId) != "" {
		id, err := c.targetNotebook(ctx, uow, userId, req.NotebookId, "access")
		if err != nil {
			return nil, err
		}
		notebookId = id
	}

	note, err := findOwnedNote(ctx, uow, c.verifier, userId, req.Id, "update")
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tag != "" {
		note.Tag = req.Tag
	}
	if notebookId != uuid.Nil {
		note.NotebookId = notebookId
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	return c.reload(ctx, uow, note.Id)
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := findOwnedNote(ctx, uow, c.verifier, userId, id, "delete")
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return apperror.Internal(internalErrorMessage, err)
	}

	c.publisherService.Publish(ctx, events.New(events.NoteDeleted, map[string]interface{}{
		"user_id": userId.String(),
		"note_id": note.Id.String(),
	}))

	return nil
}
