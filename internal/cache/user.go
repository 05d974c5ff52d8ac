package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/userhub/internal/model"
)

const (
	userKeyPrefix = "user:"

	// DefaultUserTTL is the TTL for cached user records.
	DefaultUserTTL = 5 * time.Minute
)

// ErrCacheMiss is returned when the requested key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetUser retrieves a cached user by ID. Returns ErrCacheMiss if absent.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	data, err := c.client.Get(ctx, userKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}

	return &user, nil
}

// SetUser stores a user record in cache. The password digest is excluded
// by the model's JSON encoding, so only public fields are cached.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user for cache: %w", err)
	}

	if err := c.client.Set(ctx, userKeyPrefix+user.ID, data, DefaultUserTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// DeleteUser removes a user record from cache.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, userKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	return nil
}
