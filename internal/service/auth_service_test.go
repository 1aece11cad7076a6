package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"notestack-be/internal/dto"
	"notestack-be/internal/pkg/apperror"
	"notestack-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.auth.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "Ada@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", reg.User.Email)
	assert.Equal(t, "Ada", reg.User.Name)

	login, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.Id, login.User.Id)

	userId, err := f.issuer.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.Id, userId)

	assert.Contains(t, f.events.Types(), events.UserRegistered)
}

func TestRegisterProvisionsSingleDefaultNotebook(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "Ada", "ada@example.com")

	notebooks, err := f.notebooks.GetAll(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, notebooks, 1)
	assert.Equal(t, "NoteStack", notebooks[0].Name)
	assert.True(t, notebooks[0].IsDefault)
	assert.Zero(t, notebooks[0].NoteCount)
}

func TestRegisterRejections(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ada", "ada@example.com")

	tests := []struct {
		name    string
		req     dto.RegisterRequest
		message string
	}{
		{
			name:    "short password",
			req:     dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "12345"},
			message: "Password must be at least 6 characters",
		},
		{
			name:    "duplicate email",
			req:     dto.RegisterRequest{Name: "Ada 2", Email: "ADA@example.com", Password: "secret123"},
			message: "User with this email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ada", "ada@example.com")

	for _, req := range []dto.LoginRequest{
		{Email: "ada@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "secret123"},
	} {
		_, err := f.auth.Login(context.Background(), &req)
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", err.Error())
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	}
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "Ada", "ada@example.com")

	me, err := f.auth.Me(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
	assert.False(t, me.CreatedAt.IsZero())
}

func TestRegisterLosingEmailRace(t *testing.T) {
	f := newFixture(t)

	// Another signup for the same email lands after the lookup, right before
	// this insert.
	var once sync.Once
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:competing_signup", func(tx *gorm.DB) {
		if tx.Statement.Table != "users" {
			return
		}
		once.Do(func() {
			rival := tx.Session(&gorm.Session{NewDB: true}).Exec(
				"INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
				uuid.New(), "Rival", "ada@example.com", "x", time.Now(),
			)
			require.NoError(t, rival.Error)
		})
	}))

	_, err := f.auth.Register(context.Background(), &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, "User with this email already exists", err.Error())
	assert.NotContains(t, f.events.Types(), events.UserRegistered)
}
