package models

import "time"

// User is the authoritative identity record behind a bearer token. Only a
// minimal projection of it ever reaches request handlers.
type User struct {
	ID            string     `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	Role          string     `json:"role" db:"role"` // admin | company | agency | freelancer
	FirstName     string     `json:"first_name" db:"first_name"`
	LastName      string     `json:"last_name" db:"last_name"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeactivatedAt *time.Time `json:"-" db:"deactivated_at"`
	DeletedAt     *time.Time `json:"-" db:"deleted_at"`
}

// IsActive reports whether the account may authenticate: not deactivated
// and not soft-deleted.
func (u *User) IsActive() bool {
	return u.DeactivatedAt == nil && u.DeletedAt == nil
}
