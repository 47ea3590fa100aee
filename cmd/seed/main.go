// Command seed replaces the product catalog with the sample products.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/maintenance"
)

func main() {
	if err := run(); err != nil {
		log.Printf("[Seed] error seeding database: %v", err)
		os.Exit(1)
	}
	log.Println("[Seed] database seeded")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	_, err = maintenance.SeedCatalog(ctx, store.Products, time.Now().UTC())
	return err
}
