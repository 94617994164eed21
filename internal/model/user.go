// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// Password holds the bcrypt hash, never the plaintext. The `json:"-"` tag
// keeps it out of every API response - handlers can encode a *User directly
// without leaking the hash.
//
// WHY int64 IDs?
// The database assigns ids via INTEGER PRIMARY KEY AUTOINCREMENT. SQLite
// rowids are 64-bit, so int64 is the only type that can't overflow.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
}
