package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/testing/suite"
)

// testPreferenceRepository runs the shared contract against one backend.
func testPreferenceRepository(ctx context.Context, t *testing.T, repo PreferenceRepository) {
	t.Helper()

	t.Run("Get_NotFound", func(t *testing.T) {
		// When: Get is called with an unknown key
		value, err := repo.Get(ctx, "missing")

		// Then: an ErrPreferenceNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrPreferenceNotFound)
		assert.Empty(t, value)
	})

	t.Run("Set_Then_Get", func(t *testing.T) {
		// Given: a stored preference
		err := repo.Set(ctx, "tictactoe:muted", "true")
		require.NoError(t, err)

		// When: Get is called with the same key
		value, err := repo.Get(ctx, "tictactoe:muted")

		// Then: the stored value is returned
		require.NoError(t, err)
		assert.Equal(t, "true", value)
	})

	t.Run("Set_Overwrites", func(t *testing.T) {
		// Given: a key written twice
		require.NoError(t, repo.Set(ctx, "volume", "1"))
		require.NoError(t, repo.Set(ctx, "volume", "0"))

		// When: Get is called
		value, err := repo.Get(ctx, "volume")

		// Then: the latest value wins
		require.NoError(t, err)
		assert.Equal(t, "0", value)
	})
}

func TestMemoryPreferenceRepository(t *testing.T) {
	testPreferenceRepository(context.Background(), t, NewMemoryPreferenceRepository())
}

func TestSQLitePreferenceRepository(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	testPreferenceRepository(ctx, t, NewSQLitePreferenceRepository(st.SQLite.Connection))
}

func TestRedisPreferenceRepository(t *testing.T) {
	ctx, st := suite.NewRedis(t)

	testPreferenceRepository(ctx, t, NewPreferenceRepository(st.Redis))
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPreferenceRepository()

	t.Run("Scopes do not see each other", func(t *testing.T) {
		// Given: two sessions sharing one store
		alice := Scoped(repo, "alice")
		bob := Scoped(repo, "bob")

		// When: only alice stores a value
		require.NoError(t, alice.Set(ctx, "tictactoe:muted", "true"))

		// Then: bob does not see it
		_, err := bob.Get(ctx, "tictactoe:muted")
		require.ErrorIs(t, err, apperror.ErrPreferenceNotFound)

		value, err := alice.Get(ctx, "tictactoe:muted")
		require.NoError(t, err)
		assert.Equal(t, "true", value)
	})

	t.Run("Keys are prefixed in the underlying store", func(t *testing.T) {
		require.NoError(t, Scoped(repo, "carol").Set(ctx, "k", "v"))

		value, err := repo.Get(ctx, "session:carol:k")
		require.NoError(t, err)
		assert.Equal(t, "v", value)
	})
}
