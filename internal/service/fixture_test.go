package service

import (
	"context"
	"testing"
	"time"

	"notestack-be/internal/dto"
	"notestack-be/internal/pkg/logger"
	"notestack-be/internal/pkg/mailer"
	"notestack-be/internal/repository/memory"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/internal/testutil"
	"notestack-be/pkg/access"
	"notestack-be/pkg/credential"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	issuer    *credential.TokenIssuer
	events    *testutil.EventRecorder
	auth      IAuthService
	notebooks INotebookService
	notes     INoteService
	share     IShareService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	issuer := credential.NewTokenIssuer("test-secret", time.Hour)
	recorder := &testutil.EventRecorder{}
	cache := memory.NewDefaultNotebookCache()
	verifier := access.NewVerifier()

	return &fixture{
		db:     db,
		issuer: issuer,
		events: recorder,
		auth: NewAuthService(
			uowFactory,
			credential.NewPasswordHasher(bcrypt.MinCost),
			issuer,
			mailer.NewEmailService("", 0, "", "", ""),
			recorder,
			cache,
			"NoteStack",
			logger.NewNopLogger(),
		),
		notebooks: NewNotebookService(uowFactory, verifier, cache, recorder),
		notes:     NewNoteService(uowFactory, verifier, cache, recorder),
		share:     NewShareService(uowFactory, verifier, cache, recorder),
	}
}

func (f *fixture) register(t *testing.T, name, email string) uuid.UUID {
	t.Helper()
	res, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return res.User.Id
}

func (f *fixture) defaultNotebook(t *testing.T, userId uuid.UUID) *dto.NotebookResponse {
	t.Helper()
	notebooks, err := f.notebooks.GetAll(context.Background(), userId)
	require.NoError(t, err)
	for _, nb := range notebooks {
		if nb.IsDefault {
			return nb
		}
	}
	t.Fatalf("user %s has no default notebook", userId)
	return nil
}

func (f *fixture) createNotebook(t *testing.T, userId uuid.UUID, name string) *dto.NotebookResponse {
	t.Helper()
	nb, err := f.notebooks.Create(context.Background(), userId, &dto.CreateNotebookRequest{Name: name})
	require.NoError(t, err)
	return nb
}

func (f *fixture) createNote(t *testing.T, userId uuid.UUID, req dto.CreateNoteRequest) *dto.NoteResponse {
	t.Helper()
	note, err := f.notes.Create(context.Background(), userId, &req)
	require.NoError(t, err)
	return note
}

func strPtr(s string) *string {
	return &s
}
