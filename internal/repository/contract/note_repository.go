package contract

import (
	"context"

	"notestack-be/internal/entity"
	"notestack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ReassignNotebook moves every note of userId in fromNotebookId to toNotebookId
	// and returns how many notes moved.
	ReassignNotebook(ctx context.Context, userId, fromNotebookId, toNotebookId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
