package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/photoapp/photoapp/internal/apperror"
	"github.com/photoapp/photoapp/internal/model"
)

// Hand-written in-memory mocks. All of them are mutex-guarded because the
// album service runs its per-photo checks on a separate goroutine.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// users
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			// Same shape as the real store: an untyped failure.
			return fmt.Errorf("mock: UNIQUE constraint failed: users.email")
		}
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, &apperror.AppError{
		Err:     apperror.ErrNotFound,
		Message: fmt.Sprintf("user not found with email %s", email),
	}
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) delete(t *testing.T, id int64) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

// ---------------------------------------------------------------------------
// albums
// ---------------------------------------------------------------------------

type mockAlbumRepo struct {
	mu     sync.Mutex
	nextID int64
	albums map[int64]*model.Album
	links  map[int64]map[int64]bool // albumID → photoIDs
}

func newMockAlbumRepo() *mockAlbumRepo {
	return &mockAlbumRepo{
		albums: make(map[int64]*model.Album),
		links:  make(map[int64]map[int64]bool),
	}
}

func (m *mockAlbumRepo) ListByUser(_ context.Context, userID int64) ([]model.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Album, 0)
	for _, a := range m.albums {
		if a.UserID == userID {
			cp := *a
			cp.Photos = []model.Photo{}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *mockAlbumRepo) GetByID(_ context.Context, id int64) (*model.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return nil, apperror.NotFound("album", id)
	}
	cp := *a
	cp.Photos = []model.Photo{}
	return &cp, nil
}

func (m *mockAlbumRepo) Create(_ context.Context, album *model.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	album.ID = m.nextID
	if album.Photos == nil {
		album.Photos = []model.Photo{}
	}
	cp := *album
	m.albums[album.ID] = &cp
	return nil
}

func (m *mockAlbumRepo) Update(_ context.Context, album *model.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.albums[album.ID]
	if !ok {
		return apperror.NotFound("album", album.ID)
	}
	existing.Title = album.Title
	return nil
}

func (m *mockAlbumRepo) Delete(_ context.Context, id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.links, id)
	a, ok := m.albums[id]
	if !ok || a.UserID != userID {
		return apperror.NotFound("album", id)
	}
	delete(m.albums, id)
	return nil
}

func (m *mockAlbumRepo) AddPhotos(_ context.Context, albumID int64, photoIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.links[albumID]
	if !ok {
		set = make(map[int64]bool)
		m.links[albumID] = set
	}
	for _, id := range photoIDs {
		set[id] = true
	}
	return nil
}

func (m *mockAlbumRepo) RemovePhoto(_ context.Context, albumID, photoID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.links[albumID], photoID)
	return nil
}

func (m *mockAlbumRepo) linked(t *testing.T, albumID, photoID int64) bool {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.links[albumID][photoID]
}

func (m *mockAlbumRepo) title(t *testing.T, albumID int64) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[albumID]
	if !ok {
		t.Fatalf("album %d missing from mock", albumID)
	}
	return a.Title
}

// ---------------------------------------------------------------------------
// photos
// ---------------------------------------------------------------------------

type mockPhotoRepo struct {
	mu     sync.Mutex
	nextID int64
	photos map[int64]*model.Photo
}

func newMockPhotoRepo() *mockPhotoRepo {
	return &mockPhotoRepo{photos: make(map[int64]*model.Photo)}
}

func (m *mockPhotoRepo) ListByUser(_ context.Context, userID int64) ([]model.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Photo, 0)
	for _, p := range m.photos {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPhotoRepo) GetByID(_ context.Context, id int64) (*model.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return nil, apperror.NotFound("photo", id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockPhotoRepo) Create(_ context.Context, photo *model.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	photo.ID = m.nextID
	cp := *photo
	m.photos[photo.ID] = &cp
	return nil
}

func (m *mockPhotoRepo) Update(_ context.Context, photo *model.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.photos[photo.ID]; !ok {
		return apperror.NotFound("photo", photo.ID)
	}
	cp := *photo
	m.photos[photo.ID] = &cp
	return nil
}

func (m *mockPhotoRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.photos[id]; !ok {
		return apperror.NotFound("photo", id)
	}
	delete(m.photos, id)
	return nil
}
