package database_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"notestack-be/internal/entity"
	"notestack-be/internal/model"
	"notestack-be/internal/repository/specification"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRoundTrip(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gormDB, model.All()...))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	user := &entity.User{
		Id:           uuid.New(),
		Name:         "Integration",
		Email:        "it-" + uuid.NewString() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	notebook := &entity.Notebook{Id: uuid.New(), Name: "NoteStack", IsDefault: true, UserId: user.Id, CreatedAt: time.Now()}

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	require.NoError(t, uow.NotebookRepository().Create(ctx, notebook))
	require.NoError(t, uow.Commit())

	t.Cleanup(func() {
		gormDB.Where("user_id = ?", user.Id).Delete(&model.Notebook{})
		gormDB.Where("id = ?", user.Id).Delete(&model.User{})
	})

	found, err := uow.NotebookRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.DefaultNotebook{},
	)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, notebook.Id, found.Id)

	// Rolled back work leaves nothing behind.
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.NotebookRepository().Create(ctx, &entity.Notebook{Id: uuid.New(), Name: "Temp", UserId: user.Id, CreatedAt: time.Now()}))
	require.NoError(t, uow.Rollback())

	count, err := uow.NotebookRepository().Count(ctx, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
