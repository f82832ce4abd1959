package domain

import "time"

// User represents a registered identity. Email is unique and serves as
// the authentication subject.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Owns reports whether the given authenticated subject is this user.
func (u *User) Owns(subject string) bool {
	return u != nil && u.Email == subject
}
