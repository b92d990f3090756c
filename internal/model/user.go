package model

import "time"

// User represents a registered account. Email is the login key and is stored
// lowercased; the password exists only as a bcrypt digest.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Hash      *string   `json:"-"` // Never expose password hash
	Name      *string   `json:"name,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
