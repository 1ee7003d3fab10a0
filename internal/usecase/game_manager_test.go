package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/audio"
	"github.com/rocketscienceinc/tictactoe-web/internal/controller"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/scheduler"
)

const sessionTTL = 10 * time.Minute

type fixture struct {
	manager *GameManager
	clock   *scheduler.Manual
	prefs   repository.PreferenceRepository
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		clock: scheduler.NewManual(),
		prefs: repository.NewMemoryPreferenceRepository(),
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.manager = NewGameManager(logger, f.prefs, f.clock, Settings{
		AIDelay:    controller.DefaultAIDelay,
		SessionTTL: sessionTTL,
	})
	f.manager.now = func() time.Time { return f.now }

	return f
}

func TestGameManager_GetGame(t *testing.T) {
	t.Run("Creates a fresh game for a new session", func(t *testing.T) {
		// Given: a manager without sessions
		f := newFixture(t)
		ctx := context.Background()

		// When: a session asks for its game
		snapshot := f.manager.GetGame(ctx, "s1")

		// Then: it gets an empty two-player board
		assert.Equal(t, "s1", snapshot.SessionID)
		assert.Equal(t, entity.Board{}, snapshot.View.Board)
		assert.Equal(t, entity.ModeTwoPlayer, snapshot.View.Mode)
		assert.Empty(t, snapshot.Cues)
		assert.Equal(t, 1, f.manager.Sessions())
	})

	t.Run("Sessions are isolated", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		f.manager.MakeTurn(ctx, "s1", 4)
		snapshot := f.manager.GetGame(ctx, "s2")

		assert.Equal(t, entity.Board{}, snapshot.View.Board)
		assert.Equal(t, entity.MarkX, f.manager.GetGame(ctx, "s1").View.Board[4])
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	t.Run("Returns the new board and the move sound once", func(t *testing.T) {
		// Given: a session
		f := newFixture(t)
		ctx := context.Background()

		// When: X plays the center
		snapshot := f.manager.MakeTurn(ctx, "s1", 4)

		// Then: the board and the cue are returned
		assert.Equal(t, entity.MarkX, snapshot.View.Board[4])
		assert.Equal(t, entity.MarkO, snapshot.View.Turn)
		assert.Equal(t, []audio.Cue{audio.CueMove}, snapshot.Cues)

		// Then: the cue is not delivered twice
		assert.Empty(t, f.manager.GetGame(ctx, "s1").Cues)
	})

	t.Run("Invalid turns leave the game unchanged", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.manager.MakeTurn(ctx, "s1", 4)

		snapshot := f.manager.MakeTurn(ctx, "s1", 4)

		assert.Equal(t, entity.MarkO, snapshot.View.Turn)
		assert.Empty(t, snapshot.Cues)
	})

	t.Run("Computer move shows up on the next poll", func(t *testing.T) {
		// Given: a vs-computer session where the human played a corner
		f := newFixture(t)
		ctx := context.Background()
		f.manager.ToggleMode(ctx, "s1")
		snapshot := f.manager.MakeTurn(ctx, "s1", 0)
		require.True(t, snapshot.View.AIThinking)

		// When: the delay elapses and the page polls
		f.clock.Advance(controller.DefaultAIDelay)
		snapshot = f.manager.GetGame(ctx, "s1")

		// Then: the computer took the center and its move sound is delivered
		assert.False(t, snapshot.View.AIThinking)
		assert.Equal(t, entity.MarkO, snapshot.View.Board[4])
		assert.Equal(t, []audio.Cue{audio.CueMove}, snapshot.Cues)
	})
}

func TestGameManager_ResetAndMode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.manager.MakeTurn(ctx, "s1", 0)
	snapshot := f.manager.ResetGame(ctx, "s1")
	assert.Equal(t, entity.Board{}, snapshot.View.Board)

	snapshot = f.manager.ToggleMode(ctx, "s1")
	assert.Equal(t, entity.ModeVsComputer, snapshot.View.Mode)

	snapshot = f.manager.ToggleMode(ctx, "s1")
	assert.Equal(t, entity.ModeTwoPlayer, snapshot.View.Mode)
}

func TestGameManager_ToggleMute(t *testing.T) {
	t.Run("Mute survives session eviction", func(t *testing.T) {
		// Given: a muted session
		f := newFixture(t)
		ctx := context.Background()
		snapshot := f.manager.ToggleMute(ctx, "s1")
		require.True(t, snapshot.View.Muted)

		// When: the session is evicted and comes back
		f.now = f.now.Add(sessionTTL + time.Second)
		require.Equal(t, 1, f.manager.Sweep())
		snapshot = f.manager.MakeTurn(ctx, "s1", 0)

		// Then: the new controller read the stored flag and stays silent
		assert.True(t, snapshot.View.Muted)
		assert.Empty(t, snapshot.Cues)
	})

	t.Run("Mute is stored per session", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		f.manager.ToggleMute(ctx, "s1")

		value, err := f.prefs.Get(ctx, "session:s1:"+controller.MuteKey)
		require.NoError(t, err)
		assert.Equal(t, "true", value)
		assert.False(t, f.manager.GetGame(ctx, "s2").View.Muted)
	})
}

func TestGameManager_Sweep(t *testing.T) {
	t.Run("Keeps active sessions", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.manager.GetGame(ctx, "s1")

		f.now = f.now.Add(sessionTTL - time.Second)

		assert.Equal(t, 0, f.manager.Sweep())
		assert.Equal(t, 1, f.manager.Sessions())
	})

	t.Run("Evicting a session cancels its pending computer move", func(t *testing.T) {
		// Given: a session with a pending computer move
		f := newFixture(t)
		ctx := context.Background()
		f.manager.ToggleMode(ctx, "s1")
		f.manager.MakeTurn(ctx, "s1", 0)
		require.Equal(t, 1, f.clock.Pending())

		// When: the session goes idle and is swept
		f.now = f.now.Add(sessionTTL + time.Second)
		evicted := f.manager.Sweep()

		// Then: the move is cancelled and the session is gone
		assert.Equal(t, 1, evicted)
		assert.Equal(t, 0, f.clock.Pending())
		assert.Equal(t, 0, f.manager.Sessions())

		// Then: coming back starts a fresh game
		assert.Equal(t, entity.Board{}, f.manager.GetGame(ctx, "s1").View.Board)
	})
}

func TestGameManager_Run(t *testing.T) {
	// Given: a running manager with a pending computer move
	f := newFixture(t)
	f.manager.ToggleMode(context.Background(), "s1")
	f.manager.MakeTurn(context.Background(), "s1", 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.manager.Run(ctx)
		close(done)
	}()

	// When: the context is cancelled
	cancel()

	// Then: Run returns and every session is closed
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	assert.Equal(t, 0, f.manager.Sessions())
	assert.Equal(t, 0, f.clock.Pending())
}
