package specification

import (
	"notestack-be/internal/repository/scope"

	"gorm.io/gorm"
)

type DefaultNotebook struct{}

func (s DefaultNotebook) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_default = ?", true)
}

// ByName matches the stored name exactly; callers pass the trimmed name.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// OldestFirst is the listing order for notebooks.
type OldestFirst struct{}

func (s OldestFirst) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByCreatedAsc(db)
}
