package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"moffatbay/internal/config"
	"moffatbay/internal/database"
	"moffatbay/internal/repository"
)

// One-shot sweep for cron: cancels every Hold whose expiration has passed.
// The API also sweeps lazily on availability searches; this keeps the table
// tidy during quiet periods.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := repository.NewReservationRepository(db)
	n, err := repo.CancelExpiredHolds(ctx, time.Now())
	if err != nil {
		log.Fatal("sweep failed:", err)
	}
	log.Printf("expired holds cancelled: %d", n)
}
