package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/photoapp/photoapp/internal/apperror"
	"github.com/photoapp/photoapp/internal/model"
	"github.com/photoapp/photoapp/internal/repository"
)

// PhotoRepo implements repository.PhotoRepository on top of the shared
// connection pool.
type PhotoRepo struct {
	conn *sql.DB
}

func NewPhotoRepo(db *DB) *PhotoRepo {
	return &PhotoRepo{conn: db.conn}
}

var _ repository.PhotoRepository = (*PhotoRepo)(nil)

// ListByUser returns every photo owned by userID.
func (r *PhotoRepo) ListByUser(ctx context.Context, userID int64) ([]model.Photo, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, url, comment, user_id FROM photos WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing photos for user %d: %w", userID, err)
	}
	defer rows.Close()

	photos := make([]model.Photo, 0)
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &p.Comment, &p.UserID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning photo row: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating photos: %w", err)
	}

	return photos, nil
}

// GetByID retrieves a single photo.
// Returns apperror.ErrNotFound if no photo exists with that id.
func (r *PhotoRepo) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	var p model.Photo

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, title, url, comment, user_id FROM photos WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Title, &p.URL, &p.Comment, &p.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("photo", id)
		}
		return nil, fmt.Errorf("sqlite: getting photo %d: %w", id, err)
	}

	return &p, nil
}

// Create inserts a new photo owned by photo.UserID and fills in the
// generated id.
func (r *PhotoRepo) Create(ctx context.Context, photo *model.Photo) error {
	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO photos (title, url, comment, user_id) VALUES (?, ?, ?, ?)`,
		photo.Title,
		photo.URL,
		photo.Comment,
		photo.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating photo: %w", err)
	}

	photo.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new photo id: %w", err)
	}
	return nil
}

// Update changes a photo's title, url and comment. The owner column is
// never touched. Returns apperror.ErrNotFound when no row matches.
func (r *PhotoRepo) Update(ctx context.Context, photo *model.Photo) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE photos SET title = ?, url = ?, comment = ? WHERE id = ?`,
		photo.Title,
		photo.URL,
		photo.Comment,
		photo.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating photo %d: %w", photo.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("photo", photo.ID)
	}
	return nil
}

// Delete removes a photo, clearing its album associations first - the same
// unwrapped two-step pattern as album deletion. Ownership is checked by the
// service before this is called.
func (r *PhotoRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.conn.ExecContext(ctx,
		`DELETE FROM album_photos WHERE photo_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: clearing associations for photo %d: %w", id, err)
	}

	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM photos WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting photo %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("photo", id)
	}
	return nil
}
