// Package services holds the storefront's use cases. Handlers call into
// these; repositories are reached only through them.
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/auth"
	"storefront-api/internal/events"
	"storefront-api/internal/repository"
)

type Services struct {
	Catalog  *CatalogService
	Carts    *CartService
	Orders   *OrderService
	Contacts *ContactService
	Admin    *AdminService
	Users    *UserService
}

func New(store *repository.Store, tokens *auth.TokenService, publisher events.Publisher) *Services {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &Services{
		Catalog:  NewCatalogService(store.Products),
		Carts:    NewCartService(store.Carts, store.Products),
		Orders:   NewOrderService(store, publisher),
		Contacts: NewContactService(store.Contacts, publisher),
		Admin:    NewAdminService(store),
		Users:    NewUserService(store.Users, tokens),
	}
}

// notFoundAs converts a repository miss into the given NotFound error and
// wraps anything else as internal.
func notFoundAs(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(message)
	}
	return apperrors.Internal(err)
}

// publish delivers an event without failing the caller.
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := publisher.Publish(ctx, event); err != nil {
		log.Printf("[Events] failed to publish %s %s: %v", event.Type, event.AggregateID, err)
	}
}
