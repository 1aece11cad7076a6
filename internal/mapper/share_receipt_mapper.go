package mapper

import (
	"notestack-be/internal/entity"
	"notestack-be/internal/model"

	"gorm.io/datatypes"
)

type ShareReceiptMapper struct{}

func NewShareReceiptMapper() *ShareReceiptMapper {
	return &ShareReceiptMapper{}
}

func (m *ShareReceiptMapper) ToEntity(r *model.ShareReceipt) *entity.ShareReceipt {
	if r == nil {
		return nil
	}
	return &entity.ShareReceipt{
		Id:             r.Id,
		ReceiverId:     r.ReceiverId,
		SharedBy:       r.SharedBy,
		SourceNoteId:   r.SourceNoteId,
		ReceivedNoteId: r.ReceivedNoteId,
		Payload:        []byte(r.Payload),
		CreatedAt:      r.CreatedAt,
	}
}

func (m *ShareReceiptMapper) ToModel(r *entity.ShareReceipt) *model.ShareReceipt {
	if r == nil {
		return nil
	}
	return &model.ShareReceipt{
		Id:             r.Id,
		ReceiverId:     r.ReceiverId,
		SharedBy:       r.SharedBy,
		SourceNoteId:   r.SourceNoteId,
		ReceivedNoteId: r.ReceivedNoteId,
		Payload:        datatypes.JSON(r.Payload),
		CreatedAt:      r.CreatedAt,
	}
}

func (m *ShareReceiptMapper) ToEntities(receipts []*model.ShareReceipt) []*entity.ShareReceipt {
	entities := make([]*entity.ShareReceipt, len(receipts))
	for i, r := range receipts {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
