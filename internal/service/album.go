package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/photoapp/photoapp/internal/model"
	"github.com/photoapp/photoapp/internal/repository"
)

// AlbumService orchestrates ownership checks and delegates to the album
// repository. Every single-item operation follows the same shape: fetch by
// id → not found ⇒ 404 → wrong owner ⇒ 401 → delegate.
type AlbumService struct {
	albums repository.AlbumRepository
	photos repository.PhotoRepository
	logger *slog.Logger
}

func NewAlbumService(albums repository.AlbumRepository, photos repository.PhotoRepository, logger *slog.Logger) *AlbumService {
	return &AlbumService{
		albums: albums,
		photos: photos,
		logger: logger,
	}
}

// List returns every album owned by the caller, photos not included.
func (s *AlbumService) List(ctx context.Context, userID int64) ([]model.Album, error) {
	albums, err := s.albums.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing albums: %w", err)
	}
	return albums, nil
}

// Get returns a single album with its full photo collection, provided it
// exists and belongs to the caller.
func (s *AlbumService) Get(ctx context.Context, userID, albumID int64) (*model.Album, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(userID, album); err != nil {
		return nil, err
	}
	return album, nil
}

// Create inserts a new album owned by the caller.
func (s *AlbumService) Create(ctx context.Context, userID int64, title string) (*model.Album, error) {
	album := &model.Album{
		Title:  strings.TrimSpace(title),
		UserID: userID,
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, fmt.Errorf("creating album: %w", err)
	}

	s.logger.Info("album created",
		slog.Int64("albumID", album.ID),
		slog.Int64("userID", userID),
	)
	return album, nil
}

// Update changes an album's title after the ownership check.
func (s *AlbumService) Update(ctx context.Context, userID, albumID int64, title string) (*model.Album, error) {
	album, err := s.Get(ctx, userID, albumID)
	if err != nil {
		return nil, err
	}

	album.Title = strings.TrimSpace(title)
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, fmt.Errorf("updating album: %w", err)
	}
	return album, nil
}

// Delete removes an album and all of its photo associations.
func (s *AlbumService) Delete(ctx context.Context, userID, albumID int64) error {
	if _, err := s.Get(ctx, userID, albumID); err != nil {
		return err
	}

	if err := s.albums.Delete(ctx, albumID, userID); err != nil {
		return err
	}

	s.logger.Info("album deleted",
		slog.Int64("albumID", albumID),
		slog.Int64("userID", userID),
	)
	return nil
}

// AddPhotos links the given photo ids to the album.
//
// The album itself must exist and belong to the caller. The per-photo
// ownership checks, however, run concurrently and are NOT allowed to gate
// the link: failures are logged and the association proceeds regardless, so
// a caller can currently attach another user's photo to their own album.
// This mirrors the long-standing behavior of the API; tightening it would
// change the contract, so the checks stay observational until that decision
// is made. A photo id that doesn't exist at all still fails the link via
// the join table's foreign key.
func (s *AlbumService) AddPhotos(ctx context.Context, userID, albumID int64, photoIDs []int64) error {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(userID, album); err != nil {
		return err
	}

	// Detached from the request context so the checks aren't cancelled the
	// moment the response is written.
	checkCtx := context.WithoutCancel(ctx)
	go func() {
		for _, photoID := range photoIDs {
			photo, err := s.photos.GetByID(checkCtx, photoID)
			if err != nil {
				s.logger.Warn("linked photo does not exist",
					slog.Int64("photoID", photoID),
					slog.Int64("albumID", albumID),
				)
				continue
			}
			if photo.UserID != userID {
				s.logger.Warn("linked photo belongs to another user",
					slog.Int64("photoID", photoID),
					slog.Int64("ownerID", photo.UserID),
					slog.Int64("callerID", userID),
				)
			}
		}
	}()

	if err := s.albums.AddPhotos(ctx, albumID, photoIDs); err != nil {
		return fmt.Errorf("adding photos to album: %w", err)
	}

	s.logger.Info("photos linked to album",
		slog.Int64("albumID", albumID),
		slog.Int("count", len(photoIDs)),
	)
	return nil
}

// RemovePhoto unlinks a photo from an album. Both the photo and the album
// must exist and belong to the caller; the unlink itself is idempotent.
func (s *AlbumService) RemovePhoto(ctx context.Context, userID, albumID, photoID int64) error {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(userID, photo); err != nil {
		return err
	}

	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(userID, album); err != nil {
		return err
	}

	if err := s.albums.RemovePhoto(ctx, albumID, photoID); err != nil {
		return fmt.Errorf("removing photo from album: %w", err)
	}
	return nil
}
