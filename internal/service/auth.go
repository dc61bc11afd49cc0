package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"gorm.io/gorm"

	"github.com/nextlevel/storefront/internal/hash"
	"github.com/nextlevel/storefront/internal/logging"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/mykafka"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/token"
	"github.com/nextlevel/storefront/internal/transport"
)

const minPasswordLen = 8

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
	Events *mykafka.Producer
}

type AuthResult struct {
	Token string
	User  *models.User
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if !validEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: &pwHash,
		Name:         req.Name,
		Role:         models.RoleCustomer,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.Tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	event := map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	}
	if err := s.Events.PublishEvent(ctx, "user_events", user.ID, event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("user_registered", "user_id", user.ID)
	return &AuthResult{Token: signed, User: user}, nil
}

// Login splits its failures: a missing account (or one without a password
// hash) reads as not found, a bad password as unauthorized. Clients key off
// the distinction.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found or invalid credentials", ErrNotFound)
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, fmt.Errorf("%w: user not found or invalid credentials", ErrNotFound)
	}

	if !hash.CheckPassword(*user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "user_id", user.ID)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	signed, err := s.Tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	event := map[string]interface{}{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	}
	if err := s.Events.PublishEvent(ctx, "user_events", user.ID, event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	return &AuthResult{Token: signed, User: user}, nil
}

// Verify never fails: an invalid token yields (nil, false).
func (s *AuthService) Verify(raw string) (*token.Claims, bool) {
	claims, err := s.Tokens.Verify(raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}
