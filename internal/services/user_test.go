package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/models"
)

func registration() models.RegisterRequest {
	return models.RegisterRequest{
		Name:            "Ravi",
		Email:           " Ravi@Example.com ",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Phone:           "9000000000",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.Users.Register(ctx, registration())
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", session.User.Email)
	assert.False(t, session.User.IsAdmin)
	assert.NotEmpty(t, session.Token)
	assert.NotEqual(t, "secret1", session.User.PasswordHash)

	login, err := f.svc.Users.Login(ctx, models.LoginRequest{Email: "RAVI@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)

	u, err := f.svc.Users.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, u.ID)
}

func TestRegister_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Users.Register(ctx, registration())
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		kind    error
		message string
	}{
		{"missing fields", func(r *models.RegisterRequest) { r.Name = ""; r.ConfirmPassword = "" }, apperrors.ErrValidation, "All fields are required"},
		{"mismatch", func(r *models.RegisterRequest) { r.ConfirmPassword = "other1" }, apperrors.ErrValidation, "Passwords do not match"},
		{"short", func(r *models.RegisterRequest) { r.Password, r.ConfirmPassword = "12345", "12345" }, apperrors.ErrValidation, "Password must be at least 6 characters"},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, apperrors.ErrValidation, "User validation failed"},
		{"duplicate", func(r *models.RegisterRequest) {}, apperrors.ErrConflict, "User already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registration()
			tt.mutate(&req)
			_, err := f.svc.Users.Register(ctx, req)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, apperrors.PublicMessage(err))
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Users.Register(ctx, registration())
	require.NoError(t, err)

	for _, req := range []models.LoginRequest{
		{Email: "ravi@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "secret1"},
	} {
		_, err := f.svc.Users.Login(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrAuthentication)
		assert.Equal(t, "Invalid credentials", apperrors.PublicMessage(err))
	}
}

func TestAuthenticate_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Users.Authenticate(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	_, err = f.svc.Users.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	orphan, err := f.svc.Users.tokens.Generate("deleted-user")
	require.NoError(t, err)
	_, err = f.svc.Users.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, err := f.svc.Users.Register(ctx, registration())
	require.NoError(t, err)
	other := registration()
	other.Email = "taken@example.com"
	_, err = f.svc.Users.Register(ctx, other)
	require.NoError(t, err)

	updated, err := f.svc.Users.UpdateProfile(ctx, session.User.ID, models.UpdateProfileRequest{
		Name:     "Ravi K",
		Address:  &models.Address{City: "Pune", Country: "India"},
		Password: "newsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", updated.User.Name)
	assert.Equal(t, "ravi@example.com", updated.User.Email)
	assert.Equal(t, "9000000000", updated.User.Phone)
	assert.Equal(t, "Pune", updated.User.Address.City)
	assert.NotEmpty(t, updated.Token)

	_, err = f.svc.Users.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "newsecret"})
	assert.NoError(t, err)

	_, err = f.svc.Users.UpdateProfile(ctx, session.User.ID, models.UpdateProfileRequest{Email: "taken@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.svc.Users.UpdateProfile(ctx, "missing", models.UpdateProfileRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Users.EnsureAdmin(ctx, "Admin", "Admin@Shop.com", "admin123", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.Users.EnsureAdmin(ctx, "Admin", "admin@shop.com", "admin123", "")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := f.store.Users.GetByEmail(ctx, "admin@shop.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	_, err = f.svc.Users.EnsureAdmin(ctx, "Admin", "other@shop.com", "123", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
