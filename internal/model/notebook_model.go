package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notebook struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_notebooks_user_name"`
	IsDefault bool      `gorm:"not null;default:false"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_notebooks_user_name"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Notebook) TableName() string {
	return "notebooks"
}

func (n *Notebook) BeforeCreate(tx *gorm.DB) error {
	if n.Id == uuid.Nil {
		n.Id = uuid.New()
	}
	return nil
}
