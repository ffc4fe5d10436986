package main

import (
	"context"
	"flag"
	"log"
	"time"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"
	"ads-inventory-ws/pkg/config"
	"ads-inventory-ws/pkg/database"
)

func main() {
	username := flag.String("username", "admin", "account to reset")
	password := flag.String("password", "", "new password (at least 6 characters)")
	flag.Parse()

	if *password == "" {
		log.Fatal("❌ -password is required")
	}

	// 1. Load Env
	dbCfg, err := config.LoadDB()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	// 2. Setup Database
	db, err := database.ConnectDB(*dbCfg)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer database.Close(db)

	if err := model.Migrate(db); err != nil {
		log.Fatalf("❌ migrate: %v", err)
	}

	// 3. Reset and sign the user out everywhere
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := service.NewUserService(repository.NewUserRepo(db), repository.NewSessionRepo(db))
	if err := users.ResetPassword(ctx, *username, *password); err != nil {
		log.Fatalf("❌ Failed to reset password for %s: %v", *username, err)
	}

	log.Printf("✅ Password for %s has been reset; existing sessions were revoked", *username)
}
