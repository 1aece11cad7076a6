package main

import (
	"log"

	"notestack-be/internal/config"
	"notestack-be/internal/model"
	"notestack-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: failed to connect to database: ", err)
	}

	log.Println("Running AutoMigrate for users, notebooks, notes, share_receipts...")
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Success: database migration completed.")
}
