package services

import (
	"context"
	"log"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/events"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type ContactService struct {
	contacts  repository.ContactRepository
	publisher events.Publisher
}

func NewContactService(contacts repository.ContactRepository, publisher events.Publisher) *ContactService {
	return &ContactService{contacts: contacts, publisher: publisher}
}

func (s *ContactService) Create(ctx context.Context, req models.CreateContactRequest) (*models.ContactMessage, error) {
	m := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactNew,
	}
	if err := models.ValidateContactMessage(m); err != nil {
		return nil, err
	}
	if err := s.contacts.Create(ctx, m); err != nil {
		return nil, apperrors.Internal(err)
	}

	log.Printf("[API] contact message %s received from %s", m.ID, m.Email)
	publish(ctx, s.publisher, events.ContactReceived(m))
	return m, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages, err := s.contacts.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return messages, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Contact message not found")
	}
	return m, nil
}

// UpdateStatus accepts only new, read and replied; anything else leaves the
// stored message untouched.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) (*models.ContactMessage, error) {
	parsed, err := models.ParseContactStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, notFoundAs(err, "Contact message not found")
	}
	return s.Get(ctx, id)
}
