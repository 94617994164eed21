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

// ProfileService reads and updates the authenticated user's own record.
type ProfileService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewProfileService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Get returns the user's own record.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ProfileUpdate carries the optional fields of a PATCH /profile request.
// nil means "leave unchanged".
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// Update applies a partial update to the user's own record. A new password
// is re-hashed before it is stored; a new email gets the same best-effort
// uniqueness check as registration.
func (s *ProfileService) Update(ctx context.Context, userID int64, upd ProfileUpdate) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, apperror.ValidationFailed("email", "email already exists")
			} else if !errors.Is(err, apperror.ErrNotFound) {
				return nil, fmt.Errorf("service/profile: checking email uniqueness: %w", err)
			}
			user.Email = email
		}
	}
	if upd.FirstName != nil {
		user.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Password != nil {
		hashed, err := s.passwords.Hash(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("service/profile: %w", err)
		}
		user.Password = hashed
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("service/profile: updating user %d: %w", userID, err)
	}

	s.logger.Info("profile updated", slog.Int64("userID", userID))
	return user, nil
}
