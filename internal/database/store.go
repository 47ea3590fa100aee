package database

import (
	"context"
	"fmt"
	"log"

	"storefront-api/internal/config"
	"storefront-api/internal/repository"
	"storefront-api/internal/repository/memory"
	"storefront-api/internal/repository/mongodb"
	"storefront-api/internal/repository/postgres"
)

// Open connects the driver selected in cfg and returns a ready Store.
func Open(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err := ConnectPostgres(ctx, cfg.DatabaseURL, DefaultPool)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return postgres.New(db), nil

	case config.DriverMongo:
		client, db, err := ConnectMongo(ctx, MongoConfig{URI: cfg.MongoURI, DBName: cfg.MongoDB})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return mongodb.New(client, db), nil

	case config.DriverMemory:
		log.Println("[Store] using in-memory store; data is lost on exit")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
}
