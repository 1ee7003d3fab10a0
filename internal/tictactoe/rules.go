package tictactoe

import "github.com/rocketscienceinc/tictactoe-web/internal/entity"

// Evaluate classifies the board. Triples are checked rows first, then columns, then
// diagonals, and the first complete line decides the winner.
func Evaluate(board entity.Board) entity.Outcome {
	if winner := lineWinner(board); winner != entity.MarkEmpty {
		return entity.WinOutcome(winner)
	}

	// the game continues until every cell is filled
	if !board.IsFull() {
		return entity.OutcomeInProgress
	}

	return entity.OutcomeDraw
}

func lineWinner(board entity.Board) entity.Mark {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.MarkEmpty && a == b && b == c {
			return a
		}
	}

	return entity.MarkEmpty
}
