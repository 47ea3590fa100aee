// Command inspect prints the order count, a few recent orders and the
// product categories. With -rest it reads through Supabase PostgREST.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/maintenance"
)

func main() {
	rest := flag.Bool("rest", false, "read through the Supabase REST API instead of DATABASE_DRIVER")
	flag.Parse()

	if err := run(*rest); err != nil {
		log.Printf("[Maintenance] error inspecting database: %v", err)
		os.Exit(1)
	}
}

func run(rest bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var in maintenance.Inspector
	if rest {
		inspector, err := database.NewRestInspector(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return err
		}
		in = inspector
	} else {
		store, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())
		in = maintenance.NewStoreInspector(store)
	}

	_, err = maintenance.Inspect(ctx, in)
	return err
}
