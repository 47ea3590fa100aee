package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/auth"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

// Session is an account together with a freshly issued bearer token.
type Session struct {
	User  *models.User
	Token string
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) session(u *models.User) (*Session, error) {
	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &Session{User: u, Token: token}, nil
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*Session, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, apperrors.Validation("All fields are required", missing(map[string]string{
			"name": req.Name, "email": req.Email, "password": req.Password, "confirmPassword": req.ConfirmPassword,
		})...)
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.Validation("Passwords do not match", "confirmPassword")
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return nil, apperrors.Validation("Password must be at least 6 characters", "password")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	u := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := models.ValidateUser(u); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Internal(err)
	}

	log.Printf("[API] user %s registered", u.ID)
	return s.session(u)
}

// missing lists the keys whose values are blank, in a stable order.
func missing(fields map[string]string) []string {
	var out []string
	for _, key := range []string{"name", "email", "password", "confirmPassword"} {
		if v, ok := fields[key]; ok && strings.TrimSpace(v) == "" {
			out = append(out, key)
		}
	}
	return out
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Authentication("Invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !auth.CheckPassword(req.Password, u.PasswordHash) {
		return nil, apperrors.Authentication("Invalid credentials")
	}
	return s.session(u)
}

// Authenticate resolves a bearer token to a live account.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.Authentication("Not authorized, no token")
	}
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Authentication("Not authorized, token failed")
	}
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Authentication("Not authorized, user not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return u, nil
}

func (s *UserService) Me(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "User not found")
	}
	return u, nil
}

// UpdateProfile applies the non-empty fields of req and issues a new token.
func (s *UserService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*Session, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "User not found")
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, apperrors.Validation("Password must be at least 6 characters", "password")
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		u.PasswordHash = hash
	}

	if err := models.ValidateUser(u); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperrors.Conflict("Email already in use")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}
	return s.session(u)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// EnsureAdmin creates an administrator account unless the email is
// already registered. It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password, phone string) (bool, error) {
	email = models.NormalizeEmail(email)
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, apperrors.Internal(err)
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return false, apperrors.Validation("Admin password must be at least 6 characters", "password")
	}
	if err != nil {
		return false, apperrors.Internal(err)
	}

	u := &models.User{Name: name, Email: email, PasswordHash: hash, Phone: phone, IsAdmin: true}
	if err := models.ValidateUser(u); err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, apperrors.Internal(err)
	}
	return true, nil
}
