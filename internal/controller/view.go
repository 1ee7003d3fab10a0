package controller

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// View is what the renderer and the status display consume.
type View struct {
	Board      entity.Board
	Outcome    entity.Outcome
	Turn       entity.Mark
	Mode       entity.Mode
	AIThinking bool
	Muted      bool
}

func (that View) Status() string {
	switch that.Outcome {
	case entity.OutcomeWonByX, entity.OutcomeWonByO:
		return fmt.Sprintf("Player %s wins!", that.Outcome.Winner())
	case entity.OutcomeDraw:
		return "It's a draw!"
	}

	if that.Mode == entity.ModeTwoPlayer {
		return fmt.Sprintf("Player %s's turn", that.Turn)
	}

	switch {
	case that.Turn == entity.HumanMark:
		return "Your turn"
	case that.AIThinking:
		return "AI is thinking…"
	default:
		return "AI's turn"
	}
}

// CellEnabled reports whether clicking the cell can be accepted.
func (that View) CellEnabled(cell int) bool {
	return that.Board.IsEmpty(cell) && !that.Outcome.IsTerminal() && !that.AIThinking
}
