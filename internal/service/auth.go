// Package service - authentication business logic.
//
// AuthService sits between the HTTP handlers and the repository/auth
// utilities:
//
//	AuthHandler (HTTP) → AuthService (business rules) → UserRepository (DB)
//	                   ↘ TokenService (JWT) / PasswordService (bcrypt)
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/photoapp/photoapp/internal/apperror"
	"github.com/photoapp/photoapp/internal/auth"
	"github.com/photoapp/photoapp/internal/model"
	"github.com/photoapp/photoapp/internal/repository"
)

// AuthService handles registration, login and token refresh.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register hashes the password and persists a new user.
//
// The email-uniqueness lookup here is best effort: two concurrent
// registrations for the same address can both pass it, in which case the
// second insert fails the UNIQUE constraint and surfaces as a generic store
// failure rather than a validation error.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.ValidationFailed("email", "email already exists")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking email uniqueness: %w", err)
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	user := &model.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}

// Login verifies the credentials and mints an access/refresh token pair.
//
// An unknown email and a wrong password both return the same Unauthorized
// error - the response must not reveal which half of the credential failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Authorization required")
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return nil, apperror.Unauthorized("Authorization required")
	}

	access, err := s.tokens.GenerateAccess(user)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh verifies a refresh token and mints a fresh access token.
//
// The user is re-resolved from the database so the new access token carries
// the CURRENT name and email, not whatever they were when the refresh token
// was issued. Any verification failure - bad signature, expiry, vanished
// user - collapses to Unauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return "", apperror.Unauthorized("Authorization required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized("Authorization required")
		}
		return "", fmt.Errorf("service/auth: resolving user %d: %w", userID, err)
	}

	access, err := s.tokens.GenerateAccess(user)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return access, nil
}
