package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

type memoryPreference struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferenceRepository keeps preferences for the lifetime of the process.
func NewMemoryPreferenceRepository() PreferenceRepository {
	return &memoryPreference{
		values: make(map[string]string),
	}
}

func (that *memoryPreference) Get(_ context.Context, key string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	if !ok {
		return "", apperror.ErrPreferenceNotFound
	}

	return value, nil
}

func (that *memoryPreference) Set(_ context.Context, key, value string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = value

	return nil
}
