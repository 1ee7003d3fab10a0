package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/audio"
	"github.com/rocketscienceinc/tictactoe-web/internal/controller"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/scheduler"
)

const (
	outboxLimit       = 16
	minSweepInterval  = time.Second
	defaultSessionTTL = 30 * time.Minute
)

type Settings struct {
	AIDelay       time.Duration
	SoundDebounce time.Duration
	SessionTTL    time.Duration
}

// Snapshot is the state of one session after an operation, plus the sounds it produced
// since the previous snapshot.
type Snapshot struct {
	SessionID string
	View      controller.View
	Cues      []audio.Cue
}

type session struct {
	mu         sync.Mutex
	controller *controller.Controller
	outbox     *audio.Outbox
	lastSeen   time.Time
	closed     bool
}

// GameManager owns one controller per browser session and serializes access to it.
type GameManager struct {
	logger    *slog.Logger
	prefs     repository.PreferenceRepository
	scheduler scheduler.Scheduler
	settings  Settings
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, prefs repository.PreferenceRepository, sched scheduler.Scheduler, settings Settings) *GameManager {
	if settings.SessionTTL <= 0 {
		settings.SessionTTL = defaultSessionTTL
	}

	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		prefs:     prefs,
		scheduler: sched,
		settings:  settings,
		now:       time.Now,

		sessions: make(map[string]*session),
	}
}

func (that *GameManager) GetGame(ctx context.Context, sessionID string) Snapshot {
	return that.withSession(ctx, sessionID, func(*controller.Controller) {})
}

func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, cell int) Snapshot {
	log := that.logger.With("method", "MakeTurn", "session", sessionID)

	return that.withSession(ctx, sessionID, func(game *controller.Controller) {
		if !game.ApplyMove(cell) {
			log.Debug("turn ignored", "cell", cell)
		}
	})
}

func (that *GameManager) ResetGame(ctx context.Context, sessionID string) Snapshot {
	return that.withSession(ctx, sessionID, func(game *controller.Controller) {
		game.Reset()
	})
}

func (that *GameManager) ToggleMode(ctx context.Context, sessionID string) Snapshot {
	return that.withSession(ctx, sessionID, func(game *controller.Controller) {
		game.ToggleMode()
	})
}

func (that *GameManager) ToggleMute(ctx context.Context, sessionID string) Snapshot {
	return that.withSession(ctx, sessionID, func(game *controller.Controller) {
		game.ToggleMute(ctx)
	})
}

// Run evicts idle sessions until ctx is done, then closes every remaining session.
func (that *GameManager) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	interval := that.settings.SessionTTL / 2
	if interval < minSweepInterval {
		interval = minSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			that.closeAll()
			log.Info("game manager stopped")
			return
		case <-ticker.C:
			if evicted := that.Sweep(); evicted > 0 {
				log.Info("idle sessions evicted", "count", evicted)
			}
		}
	}
}

// Sweep closes sessions idle for longer than the session TTL and returns how many it evicted.
func (that *GameManager) Sweep() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	deadline := that.now().Add(-that.settings.SessionTTL)
	evicted := 0

	for id, sess := range that.sessions {
		sess.mu.Lock()
		if sess.lastSeen.Before(deadline) {
			sess.close()
			delete(that.sessions, id)
			evicted++
		}
		sess.mu.Unlock()
	}

	return evicted
}

// Sessions returns the number of live sessions.
func (that *GameManager) Sessions() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.sessions)
}

func (that *GameManager) withSession(ctx context.Context, sessionID string, fn func(game *controller.Controller)) Snapshot {
	for {
		sess := that.getOrCreateSession(ctx, sessionID)

		sess.mu.Lock()
		if sess.closed {
			// evicted between lookup and lock
			sess.mu.Unlock()
			continue
		}

		fn(sess.controller)
		sess.lastSeen = that.now()

		snapshot := Snapshot{
			SessionID: sessionID,
			View:      sess.controller.View(),
			Cues:      sess.outbox.Drain(),
		}
		sess.mu.Unlock()

		return snapshot
	}
}

func (that *GameManager) getOrCreateSession(ctx context.Context, sessionID string) *session {
	that.mu.Lock()
	existing, ok := that.sessions[sessionID]
	that.mu.Unlock()

	if ok {
		return existing
	}

	// the preference read happens outside the manager lock
	created := that.newSession(ctx, sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok = that.sessions[sessionID]; ok {
		created.close()
		return existing
	}

	that.sessions[sessionID] = created
	that.logger.Debug("session created", "session", sessionID)

	return created
}

func (that *GameManager) newSession(ctx context.Context, sessionID string) *session {
	sess := &session{
		outbox:   audio.NewOutbox(outboxLimit),
		lastSeen: that.now(),
	}

	logger := that.logger.With("session", sessionID)

	sess.controller = controller.New(ctx, controller.Params{
		Logger:    logger,
		Scheduler: scheduler.Serialized(that.scheduler, &sess.mu),
		Audio:     audio.NewPlayer(logger, sess.outbox, that.settings.SoundDebounce),
		Store:     repository.Scoped(that.prefs, sessionID),
		AIDelay:   that.settings.AIDelay,
	})

	return sess
}

func (that *GameManager) closeAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, sess := range that.sessions {
		sess.mu.Lock()
		sess.close()
		sess.mu.Unlock()
		delete(that.sessions, id)
	}
}

func (that *session) close() {
	that.controller.Close()
	that.closed = true
}
