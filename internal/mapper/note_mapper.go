package mapper

import (
	"notestack-be/internal/entity"
	"notestack-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var ref *entity.NotebookRef
	if n.Notebook != nil {
		ref = &entity.NotebookRef{Id: n.Notebook.Id, Name: n.Notebook.Name}
	}

	return &entity.Note{
		Id:         n.Id,
		Title:      n.Title,
		Content:    n.Content,
		Tag:        n.Tag,
		NotebookId: n.NotebookId,
		UserId:     n.UserId,
		Date:       n.Date,
		Notebook:   ref,
	}
}

// ToModel never carries the resolved notebook, so saves do not touch the notebooks table.
func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:         n.Id,
		Title:      n.Title,
		Content:    n.Content,
		Tag:        n.Tag,
		NotebookId: n.NotebookId,
		UserId:     n.UserId,
		Date:       n.Date,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
