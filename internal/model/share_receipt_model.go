package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ShareReceipt struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ReceiverId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	SharedBy       string         `gorm:"type:varchar(64);not null;index"`
	SourceNoteId   string         `gorm:"type:varchar(64);not null"`
	ReceivedNoteId uuid.UUID      `gorm:"type:uuid;not null"`
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (ShareReceipt) TableName() string {
	return "share_receipts"
}

func (r *ShareReceipt) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Notebook{},
		&Note{},
		&ShareReceipt{},
	}
}
