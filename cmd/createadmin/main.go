// Command createadmin creates the administrator account described by the
// ADMIN_* environment variables.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"storefront-api/internal/auth"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/events"
	"storefront-api/internal/maintenance"
	"storefront-api/internal/services"
)

func main() {
	if err := run(); err != nil {
		log.Printf("[Maintenance] error creating admin user: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	svc := services.New(store, auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry), events.LogPublisher{})
	_, err = maintenance.CreateAdmin(ctx, svc.Users, cfg.Admin)
	return err
}
