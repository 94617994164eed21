package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/photoapp/photoapp/internal/apperror"
	"github.com/photoapp/photoapp/internal/model"
	"github.com/photoapp/photoapp/internal/repository"
)

// AlbumRepo implements repository.AlbumRepository on top of the shared
// connection pool.
type AlbumRepo struct {
	conn *sql.DB
}

func NewAlbumRepo(db *DB) *AlbumRepo {
	return &AlbumRepo{conn: db.conn}
}

var _ repository.AlbumRepository = (*AlbumRepo)(nil)

// ListByUser returns every album owned by userID, newest-created last
// (rowid order). Photo collections are NOT loaded - each album comes back
// with an empty, non-nil Photos slice so the JSON shape stays stable.
func (r *AlbumRepo) ListByUser(ctx context.Context, userID int64) ([]model.Album, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, user_id FROM albums WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing albums for user %d: %w", userID, err)
	}
	defer rows.Close()

	albums := make([]model.Album, 0)
	for rows.Next() {
		a := model.Album{Photos: []model.Photo{}}
		if err := rows.Scan(&a.ID, &a.Title, &a.UserID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning album row: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating albums: %w", err)
	}

	return albums, nil
}

// GetByID retrieves a single album with its full photo collection.
// Returns apperror.ErrNotFound if no album exists with that id.
func (r *AlbumRepo) GetByID(ctx context.Context, id int64) (*model.Album, error) {
	a := model.Album{Photos: []model.Photo{}}

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, title, user_id FROM albums WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.Title, &a.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("album", id)
		}
		return nil, fmt.Errorf("sqlite: getting album %d: %w", id, err)
	}

	rows, err := r.conn.QueryContext(ctx,
		`SELECT p.id, p.title, p.url, p.comment, p.user_id
		 FROM photos p
		 JOIN album_photos ap ON ap.photo_id = p.id
		 WHERE ap.album_id = ?
		 ORDER BY p.id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: loading photos for album %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &p.Comment, &p.UserID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning album photo row: %w", err)
		}
		a.Photos = append(a.Photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating album photos: %w", err)
	}

	return &a, nil
}

// Create inserts a new album owned by album.UserID and fills in the
// generated id.
func (r *AlbumRepo) Create(ctx context.Context, album *model.Album) error {
	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO albums (title, user_id) VALUES (?, ?)`,
		album.Title,
		album.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating album: %w", err)
	}

	album.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new album id: %w", err)
	}
	if album.Photos == nil {
		album.Photos = []model.Photo{}
	}
	return nil
}

// Update changes an album's title. The owner column is never touched.
// Returns apperror.ErrNotFound when no row matches.
func (r *AlbumRepo) Update(ctx context.Context, album *model.Album) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE albums SET title = ? WHERE id = ?`,
		album.Title,
		album.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating album %d: %w", album.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("album", album.ID)
	}
	return nil
}

// Delete removes an album owned by userID, clearing its photo associations
// first so no join rows are orphaned.
//
// The two statements are NOT wrapped in a transaction. A crash between them
// leaves an album with no associations but not yet deleted - a degraded
// state the next delete attempt repairs, not a corruption.
func (r *AlbumRepo) Delete(ctx context.Context, id, userID int64) error {
	if _, err := r.conn.ExecContext(ctx,
		`DELETE FROM album_photos WHERE album_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: clearing associations for album %d: %w", id, err)
	}

	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM albums WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting album %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("album", id)
	}
	return nil
}

// AddPhotos links each photo id to the album in a single multi-row insert.
//
// INSERT OR IGNORE makes re-linking an already linked photo a no-op (the
// composite primary key detects the duplicate). A photo id that doesn't
// exist at all fails the foreign key check and the whole statement errors -
// existence and ownership of the listed photos are the caller's concern.
func (r *AlbumRepo) AddPhotos(ctx context.Context, albumID int64, photoIDs []int64) error {
	if len(photoIDs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(photoIDs))
	args := make([]any, 0, len(photoIDs)*2)
	for _, photoID := range photoIDs {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, albumID, photoID)
	}

	query := `INSERT OR IGNORE INTO album_photos (album_id, photo_id) VALUES ` +
		strings.Join(placeholders, ", ")
	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: linking photos to album %d: %w", albumID, err)
	}
	return nil
}

// RemovePhoto unlinks a photo from an album. Idempotent: removing an
// association that doesn't exist succeeds without error.
func (r *AlbumRepo) RemovePhoto(ctx context.Context, albumID, photoID int64) error {
	if _, err := r.conn.ExecContext(ctx,
		`DELETE FROM album_photos WHERE album_id = ? AND photo_id = ?`,
		albumID, photoID,
	); err != nil {
		return fmt.Errorf("sqlite: unlinking photo %d from album %d: %w", photoID, albumID, err)
	}
	return nil
}
