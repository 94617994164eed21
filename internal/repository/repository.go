// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/photoapp/photoapp/internal/model"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// AlbumRepository persists albums and their photo associations.
//
// GetByID populates the full photo collection; ListByUser deliberately does
// not. Delete removes the album's association rows before the album row -
// the two statements are not wrapped in a transaction, so a crash in
// between leaves an empty-but-present album (degraded, not corrupt).
type AlbumRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Album, error)
	GetByID(ctx context.Context, id int64) (*model.Album, error)
	Create(ctx context.Context, album *model.Album) error
	Update(ctx context.Context, album *model.Album) error
	Delete(ctx context.Context, id, userID int64) error

	// AddPhotos links each photo id to the album. It does not verify that
	// the photo ids exist or who owns them - that is the caller's concern.
	AddPhotos(ctx context.Context, albumID int64, photoIDs []int64) error

	// RemovePhoto unlinks a photo from an album. Removing an association
	// that doesn't exist is not an error.
	RemovePhoto(ctx context.Context, albumID, photoID int64) error
}

// PhotoRepository persists photos. Delete follows the same
// clear-associations-then-delete pattern as albums.
type PhotoRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Photo, error)
	GetByID(ctx context.Context, id int64) (*model.Photo, error)
	Create(ctx context.Context, photo *model.Photo) error
	Update(ctx context.Context, photo *model.Photo) error
	Delete(ctx context.Context, id int64) error
}
