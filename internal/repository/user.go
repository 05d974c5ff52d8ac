package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/userhub/userhub/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// CreateUser inserts a new user and returns the persisted record.
// The id and both timestamps are assigned here; updated_at equals
// created_at for a fresh row. The email is expected to be normalized
// (trimmed, lowercased) by the caller.
func (r *Repository) CreateUser(ctx context.Context, name, email, passwordDigest string) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, name, email, created_at, updated_at
	`

	now := time.Now().UTC()

	var user model.User
	err := r.pool.QueryRow(ctx, query,
		uuid.New().String(),
		name,
		email,
		passwordDigest,
		now,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			// The insert neither failed nor returned the new row.
			return nil, fmt.Errorf("insert returned no rows for email %s", email)
		}
		return nil, classifyError("failed to create user", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID. Zero rows is reported as
// ErrUserNotFound, not as a database failure.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, classifyError("failed to get user by ID", err)
	}

	return &user, nil
}

// DeleteUserByID removes a user row and returns the affected row count
// (0 or 1). A missing row is not an error at this layer.
func (r *Repository) DeleteUserByID(ctx context.Context, id string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, classifyError("failed to delete user", err)
	}
	return tag.RowsAffected(), nil
}

// classifyError wraps an engine error, marking connectivity failures with a
// "connect" message so upper layers never inspect engine-specific codes.
func classifyError(op string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%s: unable to connect to database: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 is unique_violation
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "23505")
}

// isConnectionError checks whether the error indicates the database is
// unreachable rather than rejecting the statement.
func isConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 covers connection exceptions
		return strings.HasPrefix(pgErr.Code, "08")
	}

	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "failed to connect") ||
		strings.Contains(msg, "closed pool") ||
		strings.Contains(msg, "conn closed")
}
