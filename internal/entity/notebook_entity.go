// internal\entity\notebook_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultNotebookName = "NoteStack"

type Notebook struct {
	Id        uuid.UUID
	Name      string
	IsDefault bool
	UserId    uuid.UUID
	CreatedAt time.Time
}
