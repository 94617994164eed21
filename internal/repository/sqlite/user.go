package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/photoapp/photoapp/internal/apperror"
	"github.com/photoapp/photoapp/internal/model"
	"github.com/photoapp/photoapp/internal/repository"
)

// UserRepo implements repository.UserRepository on top of the shared
// connection pool.
type UserRepo struct {
	conn *sql.DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{conn: db.conn}
}

var _ repository.UserRepository = (*UserRepo)(nil)

// Create inserts a new user and fills in the generated id.
//
// The UNIQUE constraint on email is the last line of defence against
// duplicate registrations. The validation layer checks first, but a race
// between two concurrent registrations lands here - the error propagates as
// a plain store failure, not a distinct conflict kind.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (email, password, first_name, last_name)
		 VALUES (?, ?, ?, ?)`,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id.
// Returns apperror.ErrNotFound if no user exists with that id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, email, password, first_name, last_name
		 FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by email address.
// Returns apperror.ErrNotFound if no user is registered under that address.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, email, password, first_name, last_name
		 FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user not found with email %s", email),
			}
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &u, nil
}

// Update writes the full user row back. The caller (profile service) fetches
// the row first and mutates only the fields that changed.
func (r *UserRepo) Update(ctx context.Context, user *model.User) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE users
		 SET email = ?, password = ?, first_name = ?, last_name = ?
		 WHERE id = ?`,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}
