package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/events"
	"storefront-api/internal/models"
)

func validContact() models.CreateContactRequest {
	return models.CreateContactRequest{
		Name:    "Meera",
		Email:   "meera@example.com",
		Subject: "Bulk order",
		Message: "Do you ship sarees abroad?",
	}
}

func TestContactCreate(t *testing.T) {
	f := newFixture(t)

	m, err := f.svc.Contacts.Create(context.Background(), validContact())
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, models.ContactNew, m.Status)
	assert.Equal(t, "", m.Phone)
	assert.Equal(t, []string{events.TypeContactReceived}, f.publisher.types())
}

func TestContactCreate_RequiredFields(t *testing.T) {
	f := newFixture(t)
	req := validContact()
	req.Subject = "   "
	req.Message = ""

	_, err := f.svc.Contacts.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Please provide all required fields (name, email, subject, message)", apperrors.PublicMessage(err))
	assert.Equal(t, []string{"subject", "message"}, apperrors.FieldsOf(err))
}

func TestContactUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m, err := f.svc.Contacts.Create(ctx, validContact())
	require.NoError(t, err)

	updated, err := f.svc.Contacts.UpdateStatus(ctx, m.ID, "replied")
	require.NoError(t, err)
	assert.Equal(t, models.ContactReplied, updated.Status)

	for _, bad := range []string{"", "archived", "READ"} {
		_, err := f.svc.Contacts.UpdateStatus(ctx, m.ID, bad)
		assert.ErrorIs(t, err, apperrors.ErrValidation, bad)
	}
	stored, err := f.svc.Contacts.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactReplied, stored.Status)

	_, err = f.svc.Contacts.UpdateStatus(ctx, "missing", "read")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestContactList_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, subject := range []string{"first", "second", "third"} {
		req := validContact()
		req.Subject = subject
		_, err := f.svc.Contacts.Create(ctx, req)
		require.NoError(t, err)
	}

	messages, err := f.svc.Contacts.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "third", messages[0].Subject)
}
