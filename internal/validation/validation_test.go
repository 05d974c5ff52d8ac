package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateInput(t *testing.T) {
	longString := strings.Repeat("a", 256)

	tests := []struct {
		name      string
		inName    any
		inEmail   any
		inPass    any
		wantField string
	}{
		{"name_missing", nil, "a@b.com", "password123", "name"},
		{"name_not_string", 42, "a@b.com", "password123", "name"},
		{"name_blank", "   ", "a@b.com", "password123", "name"},
		{"name_too_long", longString, "a@b.com", "password123", "name"},
		{"email_missing", "John", nil, "password123", "email"},
		{"email_not_string", "John", true, "password123", "email"},
		{"email_no_at", "John", "not-an-email", "password123", "email"},
		{"email_no_tld", "John", "john@example", "password123", "email"},
		{"email_with_space", "John", "jo hn@example.com", "password123", "email"},
		{"email_too_long", "John", longString + "@example.com", "password123", "email"},
		{"password_missing", "John", "a@b.com", nil, "password"},
		{"password_not_string", "John", "a@b.com", 12345678, "password"},
		{"password_too_short", "John", "a@b.com", "short", "password"},
		{"password_too_long", "John", "a@b.com", longString, "password"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := CreateInput(test.inName, test.inEmail, test.inPass)
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Field != test.wantField {
				t.Errorf("expected field %q, got %q", test.wantField, vErr.Field)
			}
		})
	}
}

// The first failing check must win even when several fields are invalid.
func TestCreateInputCheckOrder(t *testing.T) {
	_, err := CreateInput("", "bad", "short")
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Field != "name" {
		t.Errorf("expected failure on name, got %q", vErr.Field)
	}
	if vErr.Message != "cannot be empty" {
		t.Errorf("expected empty-name message, got %q", vErr.Message)
	}
}

func TestCreateInputNormalization(t *testing.T) {
	got, err := CreateInput("  John Doe  ", "  JOHN@Example.COM ", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "John Doe" {
		t.Errorf("expected trimmed name, got %q", got.Name)
	}
	if got.Email != "john@example.com" {
		t.Errorf("expected lowercased trimmed email, got %q", got.Email)
	}
	if got.Password != "password123" {
		t.Errorf("password must pass through unchanged, got %q", got.Password)
	}
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"empty", "", true},
		{"not_a_uuid", "not-a-valid-uuid", true},
		{"missing_group", "123e4567-e89b-12d3-a456", true},
		{"non_hex", "123e4567-e89b-12d3-a456-42661417zzzz", true},
		{"valid_lowercase", "123e4567-e89b-12d3-a456-426614174000", false},
		{"valid_uppercase", "123E4567-E89B-12D3-A456-426614174000", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := UserID(test.id)
			if test.wantErr && err == nil {
				t.Fatalf("expected error for %q", test.id)
			}
			if !test.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", test.id, err)
			}
			if test.wantErr {
				var vErr *Error
				if !errors.As(err, &vErr) || vErr.Field != "id" {
					t.Errorf("expected validation error on id, got %v", err)
				}
			}
		})
	}
}
