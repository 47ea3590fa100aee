// Command fixcategories moves products from the Jewelry category to
// Jewellery.
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
		log.Printf("[Maintenance] category migration failed: %v", err)
		os.Exit(1)
	}
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

	_, _, err = maintenance.FixCategories(ctx, store.Products)
	return err
}
