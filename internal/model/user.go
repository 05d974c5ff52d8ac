// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered user account.
// PasswordDigest is never serialized; API responses are built from the
// remaining fields only.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
