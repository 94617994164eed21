package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/photoapp/photoapp/internal/model"
	"github.com/photoapp/photoapp/internal/repository"
)

// PhotoService mirrors AlbumService for photos as the primary entity.
type PhotoService struct {
	photos repository.PhotoRepository
	logger *slog.Logger
}

func NewPhotoService(photos repository.PhotoRepository, logger *slog.Logger) *PhotoService {
	return &PhotoService{
		photos: photos,
		logger: logger,
	}
}

// List returns every photo owned by the caller.
func (s *PhotoService) List(ctx context.Context, userID int64) ([]model.Photo, error) {
	photos, err := s.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return photos, nil
}

// Get returns a single photo, provided it exists and belongs to the caller.
func (s *PhotoService) Get(ctx context.Context, userID, photoID int64) (*model.Photo, error) {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(userID, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Create inserts a new photo owned by the caller.
func (s *PhotoService) Create(ctx context.Context, userID int64, title, url, comment string) (*model.Photo, error) {
	photo := &model.Photo{
		Title:   strings.TrimSpace(title),
		URL:     strings.TrimSpace(url),
		Comment: strings.TrimSpace(comment),
		UserID:  userID,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("creating photo: %w", err)
	}

	s.logger.Info("photo created",
		slog.Int64("photoID", photo.ID),
		slog.Int64("userID", userID),
	)
	return photo, nil
}

// PhotoUpdate carries a PATCH /photos/{photoId} payload. Title is always
// required by the validation rules; url and comment are optional, nil
// meaning "leave unchanged".
type PhotoUpdate struct {
	Title   string
	URL     *string
	Comment *string
}

// Update applies a partial update after the ownership check.
func (s *PhotoService) Update(ctx context.Context, userID, photoID int64, upd PhotoUpdate) (*model.Photo, error) {
	photo, err := s.Get(ctx, userID, photoID)
	if err != nil {
		return nil, err
	}

	photo.Title = strings.TrimSpace(upd.Title)
	if upd.URL != nil {
		photo.URL = strings.TrimSpace(*upd.URL)
	}
	if upd.Comment != nil {
		photo.Comment = strings.TrimSpace(*upd.Comment)
	}

	if err := s.photos.Update(ctx, photo); err != nil {
		return nil, fmt.Errorf("updating photo: %w", err)
	}
	return photo, nil
}

// Delete removes a photo and all of its album associations.
func (s *PhotoService) Delete(ctx context.Context, userID, photoID int64) error {
	if _, err := s.Get(ctx, userID, photoID); err != nil {
		return err
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		return err
	}

	s.logger.Info("photo deleted",
		slog.Int64("photoID", photoID),
		slog.Int64("userID", userID),
	)
	return nil
}
