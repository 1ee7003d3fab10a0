package tictactoe

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// movePriority is the fixed heuristic of the computer player: center, corners, edges.
var movePriority = [][]int{
	{4},
	{0, 2, 6, 8},
	{1, 3, 5, 7},
}

// Bot picks cells for the computer player. It is a static heuristic and can be beaten.
type Bot struct {
	rnd *rand.Rand
}

// NewBot returns a bot whose fallback branch draws from rnd.
// A nil rnd uses the package level source.
func NewBot(rnd *rand.Rand) *Bot {
	return &Bot{rnd: rnd}
}

// SelectMove returns the cell the computer plays, or false when the board is full.
func (that *Bot) SelectMove(board entity.Board) (int, bool) {
	return that.selectFrom(board, movePriority)
}

func (that *Bot) selectFrom(board entity.Board, priority [][]int) (int, bool) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, false
	}

	for _, candidates := range priority {
		for _, cell := range candidates {
			if board.IsEmpty(cell) {
				return cell, true
			}
		}
	}

	// unreachable while the priority lists cover the whole board
	return availableCells[that.intn(len(availableCells))], true
}

func (that *Bot) intn(n int) int {
	if that.rnd == nil {
		return rand.Intn(n) //nolint: gosec // it's ok
	}
	return that.rnd.Intn(n)
}
