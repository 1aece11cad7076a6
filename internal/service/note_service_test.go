package service

import (
	"context"
	"testing"

	"notestack-be/internal/dto"
	"notestack-be/internal/pkg/apperror"
	"notestack-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteCreateDefaults(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "Ada", "ada@example.com")
	def := f.defaultNotebook(t, userId)

	note := f.createNote(t, userId, dto.CreateNoteRequest{Title: "Groceries"})

	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "", note.Content)
	assert.Equal(t, "General", note.Tag)
	assert.Equal(t, userId, note.User)
	assert.False(t, note.Date.IsZero())
	require.NotNil(t, note.Notebook)
	assert.Equal(t, def.Id, note.Notebook.Id)
	assert.Equal(t, "NoteStack", note.Notebook.Name)

	assert.Contains(t, f.events.Types(), events.NoteCreated)
}

func TestNoteCreateRejections(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "A", "a@example.com")
	other := f.register(t, "B", "b@example.com")
	foreign := f.createNotebook(t, other, "Private")

	tests := []struct {
		name    string
		req     dto.CreateNoteRequest
		kind    apperror.Kind
		message string
	}{
		{name: "missing title", req: dto.CreateNoteRequest{Content: "x"}, kind: apperror.KindValidation, message: "Title is required"},
		{name: "malformed notebook", req: dto.CreateNoteRequest{Title: "x", NotebookId: "nope"}, kind: apperror.KindValidation, message: "Invalid notebook ID"},
		{name: "unknown notebook", req: dto.CreateNoteRequest{Title: "x", NotebookId: uuid.NewString()}, kind: apperror.KindNotFound, message: "Notebook not found"},
		{name: "foreign notebook", req: dto.CreateNoteRequest{Title: "x", NotebookId: foreign.Id.String()}, kind: apperror.KindAuthorization, message: "Not authorized to access this notebook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.notes.Create(context.Background(), owner, &tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, tt.kind))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	notes, err := f.notes.GetAll(context.Background(), other, nil)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteCreateWithoutDefaultNotebook(t *testing.T) {
	f := newFixture(t)

	_, err := f.notes.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{Title: "orphan"})
	require.Error(t, err)
	assert.Equal(t, "Default notebook not found", err.Error())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestNoteGetAllFilters(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "Ada", "ada@example.com")
	other := f.register(t, "B", "b@example.com")
	work := f.createNotebook(t, userId, "Work")

	f.createNote(t, userId, dto.CreateNoteRequest{Title: "first"})
	f.createNote(t, userId, dto.CreateNoteRequest{Title: "second", NotebookId: work.Id.String()})
	f.createNote(t, userId, dto.CreateNoteRequest{Title: "third"})
	f.createNote(t, other, dto.CreateNoteRequest{Title: "not mine"})

	all, err := f.notes.GetAll(context.Background(), userId, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{all[0].Title, all[1].Title, all[2].Title})

	inWork, err := f.notes.GetAll(context.Background(), userId, &work.Id)
	require.NoError(t, err)
	require.Len(t, inWork, 1)
	assert.Equal(t, "Work", inWork[0].Notebook.Name)

	_, err = f.notes.GetAll(context.Background(), other, &work.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
}

func TestNoteUpdatePartial(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "Ada", "ada@example.com")
	work := f.createNotebook(t, userId, "Work")
	note := f.createNote(t, userId, dto.CreateNoteRequest{Title: "Draft", Content: "body", Tag: "Ideas"})
	ctx := context.Background()

	// Empty title and tag leave the stored values alone.
	updated, err := f.notes.Update(ctx, userId, &dto.UpdateNoteRequest{Id: note.Id, Content: strPtr("new body")})
	require.NoError(t, err)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "new body", updated.Content)
	assert.Equal(t, "Ideas", updated.Tag)
	assert.True(t, note.Date.Equal(updated.Date))

	// Present-but-empty content clears it.
	cleared, err := f.notes.Update(ctx, userId, &dto.UpdateNoteRequest{Id: note.Id, Content: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", cleared.Content)

	moved, err := f.notes.Update(ctx, userId, &dto.UpdateNoteRequest{Id: note.Id, Title: "Final", NotebookId: work.Id.String()})
	require.NoError(t, err)
	assert.Equal(t, "Final", moved.Title)
	assert.Equal(t, work.Id, moved.Notebook.Id)
	assert.Equal(t, "Work", moved.Notebook.Name)
}

func TestNoteUpdateChecksNotebookBeforeNote(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "Ada", "ada@example.com")

	_, err := f.notes.Update(context.Background(), userId, &dto.UpdateNoteRequest{
		Id:         uuid.New(),
		NotebookId: uuid.NewString(),
	})
	require.Error(t, err)
	assert.Equal(t, "Notebook not found", err.Error())
}

func TestNoteOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "A", "a@example.com")
	intruder := f.register(t, "B", "b@example.com")
	note := f.createNote(t, owner, dto.CreateNoteRequest{Title: "Secret", Content: "s3cr3t"})
	ctx := context.Background()

	shown, err := f.notes.Show(ctx, intruder, note.Id)
	assert.Nil(t, shown)
	assert.Equal(t, "Not authorized to access this note", err.Error())

	_, err = f.notes.Update(ctx, intruder, &dto.UpdateNoteRequest{Id: note.Id, Title: "Mine"})
	assert.Equal(t, "Not authorized to update this note", err.Error())

	err = f.notes.Delete(ctx, intruder, note.Id)
	assert.Equal(t, "Not authorized to delete this note", err.Error())
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))

	kept, err := f.notes.Show(ctx, owner, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "Secret", kept.Title)
}

func TestNoteDelete(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "Ada", "ada@example.com")
	note := f.createNote(t, userId, dto.CreateNoteRequest{Title: "Temp"})
	ctx := context.Background()

	require.NoError(t, f.notes.Delete(ctx, userId, note.Id))

	_, err := f.notes.Show(ctx, userId, note.Id)
	assert.Equal(t, "Note not found", err.Error())

	err = f.notes.Delete(ctx, userId, note.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Contains(t, f.events.Types(), events.NoteDeleted)
}
