// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources - works everywhere Go works.
//
// All queries go through database/sql with parameterized statements; the
// driver registers itself under the name "sqlite" via the blank import.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB owns the sql.DB connection pool and the schema. The per-entity
// repositories (UserRepo, AlbumRepo, PhotoRepo) are thin views over the same
// pool - construct them with NewUserRepo and friends after New succeeds.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests) and runs the
// schema migration.
//
// sql.Open only creates the pool manager; Ping forces a real connection so a
// bad path or permissions problem surfaces here instead of on the first
// query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// A single connection, not a pool. SQLite allows one writer at a time
	// anyway, and the PRAGMAs below are per-connection - with a pool they
	// would only apply to whichever connection happened to run them. This
	// also keeps ":memory:" working: every new connection to ":memory:"
	// would otherwise get its own empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in flight - important for
	// a web server where requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. The album_photos join table
	// relies on them: linking a photo id that doesn't exist must fail at the
	// database rather than leave a dangling association.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe to
// run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS albums (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title   TEXT NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_albums_user_id ON albums(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating albums table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS photos (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title   TEXT NOT NULL,
			url     TEXT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			user_id INTEGER NOT NULL REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_photos_user_id ON photos(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating photos table: %w", err)
	}

	// Join rows have no identity of their own: the (album, photo) pair IS
	// the association. The composite primary key also makes re-linking the
	// same pair impossible at the schema level.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS album_photos (
			album_id INTEGER NOT NULL REFERENCES albums(id),
			photo_id INTEGER NOT NULL REFERENCES photos(id),
			PRIMARY KEY (album_id, photo_id)
		);
		CREATE INDEX IF NOT EXISTS idx_album_photos_photo_id ON album_photos(photo_id);
	`)
	if err != nil {
		return fmt.Errorf("creating album_photos table: %w", err)
	}

	return nil
}
