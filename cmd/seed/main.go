package main

import (
	"context"
	"flag"
	"log"

	"notestack-be/internal/config"
	"notestack-be/internal/dto"
	"notestack-be/internal/model"
	"notestack-be/internal/pkg/apperror"
	"notestack-be/internal/pkg/logger"
	"notestack-be/internal/pkg/mailer"
	"notestack-be/internal/repository/memory"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/internal/service"
	"notestack-be/pkg/access"
	"notestack-be/pkg/credential"
	"notestack-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type demoUser struct {
	name, email string
	notebooks   []string
	notes       []dto.CreateNoteRequest
}

var demoUsers = []demoUser{
	{
		name:      "Alice",
		email:     "alice@example.com",
		notebooks: []string{"Work"},
		notes: []dto.CreateNoteRequest{
			{Title: "Groceries", Content: "milk, eggs, bread", Tag: "Home"},
			{Title: "Sprint goals", Content: "ship sharing", Tag: "Work"},
		},
	},
	{
		name:  "Bob",
		email: "bob@example.com",
		notes: []dto.CreateNoteRequest{
			{Title: "Reading list", Content: "The Go Programming Language"},
		},
	},
}

// Seeds demo accounts through the service layer. Existing accounts are left
// alone, so running it twice is harmless.
func main() {
	password := flag.String("password", "secret123", "password for every demo account")
	flag.Parse()

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	uowFactory := unitofwork.NewRepositoryFactory(db)
	cache := memory.NewDefaultNotebookCache()
	verifier := access.NewVerifier()
	// Nobody listens during seeding; events are dropped.
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()
	publisher := service.NewPublisherService("seed-events", bus, sysLogger)

	authService := service.NewAuthService(
		uowFactory,
		credential.NewPasswordHasher(cfg.Auth.BcryptCost),
		credential.NewTokenIssuer(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL),
		mailer.NewEmailService("", 0, "", "", ""),
		publisher,
		cache,
		cfg.App.DefaultNotebookName,
		sysLogger,
	)
	notebookService := service.NewNotebookService(uowFactory, verifier, cache, publisher)
	noteService := service.NewNoteService(uowFactory, verifier, cache, publisher)

	ctx := context.Background()
	for _, u := range demoUsers {
		res, err := authService.Register(ctx, &dto.RegisterRequest{Name: u.name, Email: u.email, Password: *password})
		if apperror.IsKind(err, apperror.KindValidation) {
			sysLogger.Info("Seed", "Account exists, skipping", map[string]interface{}{"email": u.email})
			continue
		}
		if err != nil {
			sysLogger.Error("Seed", "Register failed", map[string]interface{}{"email": u.email, "error": err.Error()})
			continue
		}
		userId := res.User.Id

		for _, name := range u.notebooks {
			if _, err := notebookService.Create(ctx, userId, &dto.CreateNotebookRequest{Name: name}); err != nil {
				sysLogger.Error("Seed", "Notebook failed", map[string]interface{}{"name": name, "error": err.Error()})
			}
		}
		for i := range u.notes {
			if _, err := noteService.Create(ctx, userId, &u.notes[i]); err != nil {
				sysLogger.Error("Seed", "Note failed", map[string]interface{}{"title": u.notes[i].Title, "error": err.Error()})
			}
		}
		sysLogger.Info("Seed", "Seeded account", map[string]interface{}{"email": u.email, "notes": len(u.notes)})
	}
}
