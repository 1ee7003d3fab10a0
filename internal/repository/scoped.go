package repository

import "context"

type scopedPreference struct {
	repo   PreferenceRepository
	prefix string
}

// Scoped namespaces every key with the given scope, so one store can serve many sessions.
func Scoped(repo PreferenceRepository, scope string) PreferenceRepository {
	return &scopedPreference{
		repo:   repo,
		prefix: "session:" + scope + ":",
	}
}

func (that *scopedPreference) Get(ctx context.Context, key string) (string, error) {
	return that.repo.Get(ctx, that.prefix+key)
}

func (that *scopedPreference) Set(ctx context.Context, key, value string) error {
	return that.repo.Set(ctx, that.prefix+key, value)
}
