package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/photoapp/photoapp/internal/model"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
// Each test gets its own database, so tests can't interfere with each other.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser inserts a user with a unique email derived from name.
func createTestUser(t *testing.T, db *DB, name string) *model.User {
	t.Helper()

	u := &model.User{
		Email:     fmt.Sprintf("%s@example.com", name),
		Password:  "$2a$04$notarealhashbutlongenough",
		FirstName: name,
		LastName:  "Test",
	}
	if err := NewUserRepo(db).Create(context.Background(), u); err != nil {
		t.Fatalf("creating test user %s: %v", name, err)
	}
	return u
}

func createTestAlbum(t *testing.T, db *DB, userID int64, title string) *model.Album {
	t.Helper()

	a := &model.Album{Title: title, UserID: userID}
	if err := NewAlbumRepo(db).Create(context.Background(), a); err != nil {
		t.Fatalf("creating test album %q: %v", title, err)
	}
	return a
}

func createTestPhoto(t *testing.T, db *DB, userID int64, title string) *model.Photo {
	t.Helper()

	p := &model.Photo{
		Title:  title,
		URL:    fmt.Sprintf("https://example.com/%s.jpg", title),
		UserID: userID,
	}
	if err := NewPhotoRepo(db).Create(context.Background(), p); err != nil {
		t.Fatalf("creating test photo %q: %v", title, err)
	}
	return p
}

// countAssociations reads the join table directly. Tests in this package may
// reach past the repository API to verify what actually hit disk.
func countAssociations(t *testing.T, db *DB, albumID int64) int {
	t.Helper()

	var n int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM album_photos WHERE album_id = ?`, albumID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("counting associations: %v", err)
	}
	return n
}
