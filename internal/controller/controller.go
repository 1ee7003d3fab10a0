// Package controller drives one tic-tac-toe board: it validates moves, alternates turns,
// schedules the computer player and triggers sound and persistence side effects.
//
// A Controller is not safe for concurrent use. Callers serialize access, including the
// callbacks of the scheduler they pass in (see scheduler.Serialized).
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	DefaultAIDelay = 300 * time.Millisecond

	// MuteKey is the preference key holding the mute flag.
	MuteKey = "tictactoe:muted"
)

type Audio interface {
	PlayMove()
	PlayWin()
	PlayDraw()
	SetMuted(muted bool)
}

type preferenceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type moveSelector interface {
	SelectMove(board entity.Board) (int, bool)
}

type Params struct {
	Logger    *slog.Logger
	Scheduler scheduler.Scheduler
	Audio     Audio
	Store     preferenceStore

	// Bot defaults to the center, corners, edges heuristic.
	Bot     moveSelector
	AIDelay time.Duration
}

type Controller struct {
	logger    *slog.Logger
	scheduler scheduler.Scheduler
	audio     Audio
	store     preferenceStore
	bot       moveSelector
	aiDelay   time.Duration

	board      entity.Board
	turn       entity.Mark
	mode       entity.Mode
	aiThinking bool
	announced  bool
	muted      bool

	// generation changes on every reset so a computer move scheduled for an older board
	// is abandoned even if its cancellation lost the race with the timer.
	generation uint64
	pending    scheduler.Handle
}

// New creates a controller in two-player mode and reads the mute flag once from the store.
func New(ctx context.Context, params Params) *Controller {
	that := &Controller{
		logger:    params.Logger.With("component", "controller"),
		scheduler: params.Scheduler,
		audio:     params.Audio,
		store:     params.Store,
		bot:       params.Bot,
		aiDelay:   params.AIDelay,

		turn: entity.MarkX,
		mode: entity.ModeTwoPlayer,
	}

	if that.bot == nil {
		that.bot = tictactoe.NewBot(nil)
	}

	if that.aiDelay <= 0 {
		that.aiDelay = DefaultAIDelay
	}

	that.muted = that.loadMuted(ctx)
	that.audio.SetMuted(that.muted)

	return that
}

// Outcome is recomputed from the board on every call.
func (that *Controller) Outcome() entity.Outcome {
	return tictactoe.Evaluate(that.board)
}

// ApplyMove places the current player's mark. Invalid moves are ignored and reported as
// false; they never change state.
func (that *Controller) ApplyMove(cell int) bool {
	log := that.logger.With("method", "ApplyMove", "cell", cell)

	if !that.canHumanMove(cell) {
		log.Debug("move ignored", "turn", that.turn, "mode", that.mode, "ai_thinking", that.aiThinking)
		return false
	}

	that.commit(cell)

	if that.mode == entity.ModeVsComputer && that.turn == entity.ComputerMark && !that.Outcome().IsTerminal() {
		that.scheduleComputerMove()
	}

	return true
}

// Reset starts a new game in the current mode. X always moves first.
func (that *Controller) Reset() {
	that.cancelPending()

	that.board = entity.Board{}
	that.turn = entity.MarkX
	that.aiThinking = false
	that.announced = false
}

// ToggleMode switches between two-player and vs-computer and always restarts the game.
func (that *Controller) ToggleMode() {
	that.mode = that.mode.Toggle()
	that.Reset()
}

// Close cancels any pending computer move. The controller must not be used afterwards.
func (that *Controller) Close() {
	that.cancelPending()
}

func (that *Controller) Muted() bool {
	return that.muted
}

// SetMuted updates the flag and persists it. Persistence failures are logged and ignored.
func (that *Controller) SetMuted(ctx context.Context, muted bool) {
	if that.muted == muted {
		return
	}

	that.muted = muted
	that.audio.SetMuted(muted)

	if err := that.store.Set(ctx, MuteKey, strconv.FormatBool(muted)); err != nil {
		that.logger.Warn("failed to persist mute flag", "method", "SetMuted", "error", err)
	}
}

func (that *Controller) ToggleMute(ctx context.Context) {
	that.SetMuted(ctx, !that.muted)
}

func (that *Controller) View() View {
	return View{
		Board:      that.board,
		Outcome:    that.Outcome(),
		Turn:       that.turn,
		Mode:       that.mode,
		AIThinking: that.aiThinking,
		Muted:      that.muted,
	}
}

func (that *Controller) canHumanMove(cell int) bool {
	switch {
	case !that.board.IsEmpty(cell):
		return false
	case that.Outcome().IsTerminal():
		return false
	case that.aiThinking:
		return false
	case that.mode == entity.ModeVsComputer && that.turn != entity.HumanMark:
		return false
	default:
		return true
	}
}

func (that *Controller) commit(cell int) {
	that.board[cell] = that.turn
	that.turn = that.turn.Opponent()
	that.audio.PlayMove()

	that.announceOutcome()
}

// announceOutcome plays the terminal sound once per game.
func (that *Controller) announceOutcome() {
	outcome := that.Outcome()
	if !outcome.IsTerminal() || that.announced {
		return
	}

	that.announced = true

	if outcome == entity.OutcomeDraw {
		that.audio.PlayDraw()
		return
	}
	that.audio.PlayWin()
}

func (that *Controller) scheduleComputerMove() {
	that.aiThinking = true

	generation := that.generation
	that.pending = that.scheduler.AfterFunc(that.aiDelay, func() {
		that.computerMove(generation)
	})
}

func (that *Controller) computerMove(generation uint64) {
	log := that.logger.With("method", "computerMove")

	if generation != that.generation {
		log.Debug("stale computer move abandoned")
		return
	}

	that.pending = nil

	cell, ok := that.bot.SelectMove(that.board)
	if !ok || !that.board.IsEmpty(cell) || that.turn != entity.ComputerMark || that.Outcome().IsTerminal() {
		log.Warn("computer move abandoned", "board", that.board.String(), "cell", cell)
		that.aiThinking = false
		return
	}

	that.commit(cell)
	that.aiThinking = false
}

func (that *Controller) cancelPending() {
	if that.pending != nil {
		that.pending.Cancel()
		that.pending = nil
	}

	that.generation++
}

func (that *Controller) loadMuted(ctx context.Context) bool {
	log := that.logger.With("method", "loadMuted")

	value, err := that.store.Get(ctx, MuteKey)
	if errors.Is(err, apperror.ErrPreferenceNotFound) {
		return false
	}

	if err != nil {
		log.Warn("failed to read mute flag, assuming not muted", "error", err)
		return false
	}

	muted, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("invalid mute flag, assuming not muted", "value", value, "error", err)
		return false
	}

	return muted
}
