// Package validation provides pure input validators for user operations.
// Validators never touch the network or the database.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field limits.
const (
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MinPasswordLength = 8
	MaxPasswordLength = 255
)

// emailRegex accepts anything shaped like local@domain.tld with no spaces.
var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// uuidRegex matches the canonical hyphenated UUID form, case-insensitive.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Error reports a single failed field check. The first failing check wins;
// callers never see more than one Error per request.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NormalizedInput is the result of a successful CreateInput validation:
// name trimmed, email trimmed and lowercased, password untouched.
type NormalizedInput struct {
	Name     string
	Email    string
	Password string
}

// CreateInput validates the raw create-user payload. Arguments are the
// decoded JSON values and may be of any type; a missing key or a non-string
// value fails the "required" check for that field.
//
// Checks run in a fixed order and the first failure is returned:
// name required, name non-blank, name length, email required, email format,
// email length, password required, password min length, password max length.
func CreateInput(name, email, password any) (NormalizedInput, error) {
	nameStr, ok := name.(string)
	if !ok {
		return NormalizedInput{}, &Error{Field: "name", Message: "is required and must be a string"}
	}
	trimmedName := strings.TrimSpace(nameStr)
	if trimmedName == "" {
		return NormalizedInput{}, &Error{Field: "name", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(nameStr) > MaxNameLength {
		return NormalizedInput{}, &Error{Field: "name", Message: fmt.Sprintf("is too long (max %d characters)", MaxNameLength)}
	}

	emailStr, ok := email.(string)
	if !ok {
		return NormalizedInput{}, &Error{Field: "email", Message: "is required and must be a string"}
	}
	trimmedEmail := strings.TrimSpace(emailStr)
	if !emailRegex.MatchString(trimmedEmail) {
		return NormalizedInput{}, &Error{Field: "email", Message: "has an invalid format"}
	}
	if utf8.RuneCountInString(trimmedEmail) > MaxEmailLength {
		return NormalizedInput{}, &Error{Field: "email", Message: fmt.Sprintf("is too long (max %d characters)", MaxEmailLength)}
	}

	passwordStr, ok := password.(string)
	if !ok {
		return NormalizedInput{}, &Error{Field: "password", Message: "is required and must be a string"}
	}
	if utf8.RuneCountInString(passwordStr) < MinPasswordLength {
		return NormalizedInput{}, &Error{Field: "password", Message: fmt.Sprintf("is too short (min %d characters)", MinPasswordLength)}
	}
	if utf8.RuneCountInString(passwordStr) > MaxPasswordLength {
		return NormalizedInput{}, &Error{Field: "password", Message: fmt.Sprintf("is too long (max %d characters)", MaxPasswordLength)}
	}

	return NormalizedInput{
		Name:     trimmedName,
		Email:    strings.ToLower(trimmedEmail),
		Password: passwordStr,
	}, nil
}

// UserID validates a user identifier from the URL path.
func UserID(id string) error {
	if id == "" {
		return &Error{Field: "id", Message: "is required"}
	}
	if !uuidRegex.MatchString(id) {
		return &Error{Field: "id", Message: "must be a valid UUID"}
	}
	return nil
}
