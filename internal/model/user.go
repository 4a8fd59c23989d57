// Package model defines the data structures used throughout the application.
// The `db:"..."` tags name the column each field is stored in.
package model

import "time"

// User represents a registered account.
//
// Username is unique across all users (enforced by the users table's UNIQUE
// constraint). Password is stored and compared verbatim.
//
// Password carries `json:"-"` so it never leaves the process through an
// encoder.
type User struct {
	ID        int64     `json:"id"        db:"id"`
	Username  string    `json:"username"  db:"username"`
	Password  string    `json:"-"         db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
