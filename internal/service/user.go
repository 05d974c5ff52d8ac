// Package service provides business logic for user operations.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/repository"
	"github.com/userhub/userhub/internal/validation"
)

// Store is the persistence gateway consumed by UserService.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordDigest string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	DeleteUserByID(ctx context.Context, id string) (int64, error)
}

// UserCache caches user records keyed by id. Implementations must report
// a miss as cache.ErrCacheMiss.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// UserService orchestrates validation, hashing and persistence for the
// three user operations. Each call is an independent linear pipeline with
// exactly one persistence call and no retries.
type UserService struct {
	store  Store
	cache  UserCache
	logger *slog.Logger
}

// NewUserService creates a new UserService. cache may be nil, in which
// case fetches always go to the store.
func NewUserService(store Store, cache UserCache, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Create validates the raw input, hashes the password and persists the
// user. The returned record never carries the password digest.
//
// Note: the digest is a plain SHA-256 of the password, kept for
// compatibility with the existing stored format. It is not a
// credential-grade hash; changing it would invalidate every stored row.
func (s *UserService) Create(ctx context.Context, name, email, password any) (*model.User, error) {
	input, err := validation.CreateInput(name, email, password)
	if err != nil {
		return nil, err
	}

	digest := hashPassword(input.Password)

	user, err := s.store.CreateUser(ctx, input.Name, input.Email, digest)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, &DuplicateEmailError{Email: input.Email}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.PasswordDigest = ""

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("failed to cache user after create", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// Fetch returns the user with the given id, serving from cache when warm.
func (s *UserService) Fetch(ctx context.Context, id string) (*model.User, error) {
	if err := validation.UserID(id); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if user, err := s.cache.GetUser(ctx, id); err == nil {
			return user, nil
		}
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("failed to cache user after fetch", "user_id", id, "error", err)
		}
	}

	return user, nil
}

// Delete permanently removes the user with the given id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := validation.UserID(id); err != nil {
		return err
	}

	affected, err := s.store.DeleteUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{ID: id}
	}

	if s.cache != nil {
		if err := s.cache.DeleteUser(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate cached user", "user_id", id, "error", err)
		}
	}

	return nil
}

// hashPassword returns the lowercase hex SHA-256 digest of the password.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
