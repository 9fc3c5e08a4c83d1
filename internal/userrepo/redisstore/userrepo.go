package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/userrepo"
	"github.com/haguru/sakura/pkg/helper"

	"github.com/go-redis/redis/v8"
)

// KeyValueAPI is the part of *redis.Client the store uses.
type KeyValueAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisUserRepository keeps the collection as a JSON string under one key.
type RedisUserRepository struct {
	client KeyValueAPI
	key    string
	logger interfaces.Logger
}

func NewRedisUserRepository(client KeyValueAPI, key string, logger interfaces.Logger) (interfaces.UserRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if key == "" {
		return nil, fmt.Errorf("redis key cannot be empty")
	}
	return &RedisUserRepository{client: client, key: key, logger: logger}, nil
}

func (r *RedisUserRepository) Init(ctx context.Context) error {
	if _, err := r.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrInitStore, err)
	}
	return nil
}

func (r *RedisUserRepository) Load(ctx context.Context) ([]models.User, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Info("users key not found, creating empty collection", "func", helper.GetFuncName(), "key", r.key)
		if err := r.Save(ctx, []models.User{}); err != nil {
			return nil, err
		}
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
	}
	return userrepo.DecodeUsers(data)
}

// Save writes the collection with no expiry.
func (r *RedisUserRepository) Save(ctx context.Context, users []models.User) error {
	data, err := userrepo.EncodeUsers(users)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
	}
	return nil
}

func (r *RedisUserRepository) Close(ctx context.Context) error {
	return nil
}
