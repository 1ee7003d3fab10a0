package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

// PreferenceRepository is a small key-value store for per-player settings.
// Get returns apperror.ErrPreferenceNotFound for unknown keys.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type dbPreference struct {
	client *redis.Client
}

func NewPreferenceRepository(client *redis.Client) PreferenceRepository {
	return &dbPreference{
		client: client,
	}
}

func (that *dbPreference) Get(ctx context.Context, key string) (string, error) {
	response, err := that.client.Get(ctx, preferenceKey(key)).Result()

	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrPreferenceNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get preference: %w", err)
	}

	return response, nil
}

func (that *dbPreference) Set(ctx context.Context, key, value string) error {
	err := that.client.Set(ctx, preferenceKey(key), value, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}

	return nil
}

func preferenceKey(key string) string {
	return "preference:" + key
}
