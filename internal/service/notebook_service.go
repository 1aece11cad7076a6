package service

import (
	"context"
	"fmt"
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

type INotebookService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DeleteNotebookResponse, error)
	GetNotes(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookNotesResponse, error)
}

type notebookService struct {
	uowFactory       unitofwork.RepositoryFactory
	verifier         *access.Verifier
	defaultNotebooks *memory.DefaultNotebookCache
	publisherService IPublisherService
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	verifier *access.Verifier,
	defaultNotebooks *memory.DefaultNotebookCache,
	publisherService IPublisherService,
) INotebookService {
	return &notebookService{
		uowFactory:       uowFactory,
		verifier:         verifier,
		defaultNotebooks: defaultNotebooks,
		publisherService: publisherService,
	}
}

func (c *notebookService) countNotes(ctx context.Context, uow unitofwork.UnitOfWork, userId, notebookId uuid.UUID) (int64, error) {
	count, err := uow.NoteRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByNotebookID{NotebookID: notebookId},
	)
	if err != nil {
		return 0, apperror.Internal(internalErrorMessage, err)
	}
	return count, nil
}

// GetAll lists the user's notebooks, oldest first, each with its note count.
func (c *notebookService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OldestFirst{},
	)
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	result := make([]*dto.NotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		count, err := c.countNotes(ctx, uow, userId, notebook.Id)
		if err != nil {
			return nil, err
		}
		result = append(result, toNotebookResponse(notebook, count))
	}

	return result, nil
}

func (c *notebookService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := findOwnedNotebook(ctx, uow, c.verifier, userId, id, "access")
	if err != nil {
		return nil, err
	}

	count, err := c.countNotes(ctx, uow, userId, notebook.Id)
	if err != nil {
		return nil, err
	}

	return toNotebookResponse(notebook, count), nil
}

func (c *notebookService) nameTaken(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, name string, except uuid.UUID) (bool, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ByName{Name: name},
	}
	if except != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: except})
	}

	count, err := uow.NotebookRepository().Count(ctx, specs...)
	if err != nil {
		return false, apperror.Internal(internalErrorMessage, err)
	}
	return count > 0, nil
}

func (c *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Notebook name is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	taken, err := c.nameTaken(ctx, uow, userId, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Validation("A notebook with this name already exists")
	}

	notebook := &entity.Notebook{
		Id:        uuid.New(),
		Name:      name,
		IsDefault: false,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.NotebookRepository().Create(ctx, notebook); err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	return toNotebookResponse(notebook, 0), nil
}

// Update renames a notebook. The default notebook keeps its name.
func (c *notebookService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Notebook name is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := findOwnedNotebook(ctx, uow, c.verifier, userId, req.Id, "update")
	if err != nil {
		return nil, err
	}
	if notebook.IsDefault {
		return nil, apperror.Validation(fmt.Sprintf("Cannot rename the default notebook '%s'", notebook.Name))
	}

	taken, err := c.nameTaken(ctx, uow, userId, name, notebook.Id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Validation("A notebook with this name already exists")
	}

	notebook.Name = name
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	count, err := c.countNotes(ctx, uow, userId, notebook.Id)
	if err != nil {
		return nil, err
	}

	return toNotebookResponse(notebook, count), nil
}

// Delete moves the notebook's notes to the default notebook and removes it,
// both inside one transaction.
func (c *notebookService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DeleteNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	defer uow.Rollback()

	notebook, err := findOwnedNotebook(ctx, uow, c.verifier, userId, id, "delete")
	if err != nil {
		return nil, err
	}
	if notebook.IsDefault {
		return nil, apperror.Validation(fmt.Sprintf("Cannot delete the default notebook '%s'", notebook.Name))
	}

	defaultNotebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.DefaultNotebook{},
	)
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	if defaultNotebook == nil {
		return nil, apperror.NotFound("Default notebook not found")
	}

	moved, err := uow.NoteRepository().ReassignNotebook(ctx, userId, notebook.Id, defaultNotebook.Id)
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	if err := uow.NotebookRepository().Delete(ctx, notebook.Id); err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	c.publisherService.Publish(ctx, events.New(events.NotebookDeleted, map[string]interface{}{
		"user_id":     userId.String(),
		"notebook_id": notebook.Id.String(),
		"moved_notes": moved,
	}))

	message := "Notebook deleted successfully."
	if moved > 0 {
		message = fmt.Sprintf("Notebook deleted successfully. %d note(s) moved to '%s'.", moved, defaultNotebook.Name)
	}
	return &dto.DeleteNotebookResponse{Message: message, MovedNotes: moved}, nil
}

// GetNotes lists one notebook's notes, newest first.
func (c *notebookService) GetNotes(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookNotesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := findOwnedNotebook(ctx, uow, c.verifier, userId, id, "access")
	if err != nil {
		return nil, err
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByNotebookID{NotebookID: notebook.Id},
		specification.WithNotebook{},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}

	return &dto.NotebookNotesResponse{
		Notebook:   notebook.Name,
		NotebookId: notebook.Id,
		Notes:      toNoteResponses(notes),
	}, nil
}
