package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/auth"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/events"
	"storefront-api/internal/handlers"
	"storefront-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] invalid configuration: %v", err)
	}

	ctx := context.Background()
	store, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("[API] failed to open %s store: %v", cfg.DatabaseDriver, err)
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	svc := services.New(store, tokens, publisher)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(svc, handlers.RouterOptions{
		Production:  cfg.IsProduction(),
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[API] server starting on :%s (%s, %s store)", cfg.Port, cfg.Environment, store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[API] server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[API] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] forced shutdown: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Printf("[Events] close: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("[Store] close: %v", err)
	}
	log.Println("[API] shutdown complete")
}
