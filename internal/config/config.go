package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	devJWTSecret = "storefront-dev-secret"
)

type Config struct {
	Port        string
	Environment string

	DatabaseDriver string
	DatabaseURL    string
	MongoURI       string
	MongoDB        string

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigins []string

	KafkaBrokers []string
	KafkaTopic   string

	SupabaseURL string
	SupabaseKey string

	Admin AdminAccount
}

// AdminAccount is the account created by the createadmin utility.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		Environment:    getEnv("APP_ENV", "development"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", DriverPostgres),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDB:        getEnv("MONGO_DB", "storefront"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "")),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "storefront-events"),
		SupabaseURL:    getEnv("SUPABASE_URL", ""),
		SupabaseKey:    getEnv("SUPABASE_ANON_KEY", ""),
		Admin: AdminAccount{
			Name:     getEnv("ADMIN_NAME", "Admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@storefront.local"),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Phone:    getEnv("ADMIN_PHONE", ""),
		},
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "720h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRY: %w", err)
	}
	cfg.JWTExpiry = expiry

	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("DATABASE_DRIVER must be one of %s, %s, %s", DriverPostgres, DriverMongo, DriverMemory)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		log.Println("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
