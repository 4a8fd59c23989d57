package model

import "time"

// Student is one row of the shared student list.
//
// Students are not owned by any User: every visitor sees and edits the same set.
// PostalCode is optional and stored as an empty string when absent.
type Student struct {
	ID         int64     `json:"id"         db:"id"`
	Name       string    `json:"name"       db:"name"`
	City       string    `json:"city"       db:"city"`
	Address    string    `json:"address"    db:"address"`
	PostalCode string    `json:"postalCode" db:"postal_code"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt"  db:"updated_at"`
}
