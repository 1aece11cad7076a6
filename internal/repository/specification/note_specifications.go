package specification

import (
	"notestack-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

type ByTitleIn struct {
	Titles []string
}

func (s ByTitleIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title IN ?", s.Titles)
}

type ByContent struct {
	Content string
}

func (s ByContent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content = ?", s.Content)
}

// WithNotebook resolves each note's notebook so the name can be returned.
type WithNotebook struct{}

func (s WithNotebook) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Notebook")
}

// NewestFirst is the listing order for notes.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByDateDesc(db)
}
