package service

import "fmt"

// DuplicateEmailError reports a create attempt with an email that is
// already registered. Email holds the normalized (trimmed, lowercased)
// value that collided.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("a user with email %s already exists", e.Email)
}

// NotFoundError reports a fetch or delete against an id with no
// corresponding user row.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.ID)
}
