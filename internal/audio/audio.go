// Package audio turns game events into sound cues for the page to play.
//
// Playback itself happens in the browser. The server side decides whether a cue is
// emitted at all: muted players emit nothing and repeated cues inside the debounce
// window are dropped so consecutive move sounds do not overlap.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

// Cue names a sound.
type Cue string

const (
	CueMove Cue = "move"
	CueWin  Cue = "win"
	CueDraw Cue = "draw"
)

type Sink interface {
	Push(cue Cue) error
}

type Player struct {
	logger *slog.Logger
	sink   Sink

	debounce time.Duration
	now      func() time.Time

	muted bool
	last  map[Cue]time.Time
}

func NewPlayer(logger *slog.Logger, sink Sink, debounce time.Duration) *Player {
	return &Player{
		logger:   logger.With("component", "audio"),
		sink:     sink,
		debounce: debounce,
		now:      time.Now,
		last:     make(map[Cue]time.Time),
	}
}

func (that *Player) PlayMove() { that.play(CueMove) }
func (that *Player) PlayWin()  { that.play(CueWin) }
func (that *Player) PlayDraw() { that.play(CueDraw) }

func (that *Player) SetMuted(muted bool) {
	that.muted = muted
}

func (that *Player) Muted() bool {
	return that.muted
}

func (that *Player) play(cue Cue) {
	if that.muted {
		return
	}

	now := that.now()
	if last, ok := that.last[cue]; ok && now.Sub(last) < that.debounce {
		return
	}
	that.last[cue] = now

	// playback is best effort
	if err := that.sink.Push(cue); err != nil {
		that.logger.Debug("sound dropped", "cue", cue, "error", err)
	}
}

// Outbox buffers cues until the renderer drains them into the next response.
type Outbox struct {
	mu    sync.Mutex
	limit int
	cues  []Cue
}

func NewOutbox(limit int) *Outbox {
	return &Outbox{limit: limit}
}

func (that *Outbox) Push(cue Cue) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.cues) >= that.limit {
		return apperror.ErrOutboxFull
	}
	that.cues = append(that.cues, cue)

	return nil
}

// Drain returns the buffered cues in push order and empties the outbox.
func (that *Outbox) Drain() []Cue {
	that.mu.Lock()
	defer that.mu.Unlock()

	cues := that.cues
	that.cues = nil

	return cues
}
