package entity

import "fmt"

// Mark is the content of a single cell.
type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// Outcome is the classification of a board. It is always derived from the board.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeWonByX
	OutcomeWonByO
	OutcomeDraw
)

// Mode selects who controls mark O.
type Mode string

const (
	ModeTwoPlayer  Mode = "two-player"
	ModeVsComputer Mode = "vs-computer"
)

const (
	BoardSize = 9

	// HumanMark and ComputerMark are fixed in vs-computer mode.
	HumanMark    = MarkX
	ComputerMark = MarkO
)

// WinCombos lists the eight winning triples: rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major.
type Board [BoardSize]Mark

func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (that Mark) String() string {
	if that == MarkEmpty {
		return "_"
	}
	return string(that)
}

func (that Outcome) IsTerminal() bool {
	return that != OutcomeInProgress
}

// Winner returns the winning mark, or MarkEmpty for a draw or an unfinished game.
func (that Outcome) Winner() Mark {
	switch that {
	case OutcomeWonByX:
		return MarkX
	case OutcomeWonByO:
		return MarkO
	default:
		return MarkEmpty
	}
}

func (that Outcome) String() string {
	switch that {
	case OutcomeInProgress:
		return "in-progress"
	case OutcomeWonByX:
		return "won-by-X"
	case OutcomeWonByO:
		return "won-by-O"
	case OutcomeDraw:
		return "draw"
	default:
		return fmt.Sprintf("outcome(%d)", int(that))
	}
}

// WinOutcome maps a winning mark to its outcome.
func WinOutcome(mark Mark) Outcome {
	if mark == MarkO {
		return OutcomeWonByO
	}
	return OutcomeWonByX
}

func (that Mode) Toggle() Mode {
	if that == ModeVsComputer {
		return ModeTwoPlayer
	}
	return ModeVsComputer
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// IsEmpty reports whether the cell is in range and unoccupied.
func (that Board) IsEmpty(cell int) bool {
	return IsValidCell(cell) && that[cell] == MarkEmpty
}

// EmptyCells returns the indices of unoccupied cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, mark := range that {
		if mark == MarkEmpty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, mark := range that {
		if mark == MarkEmpty {
			return false
		}
	}

	return true
}

// Count returns how many cells hold the given mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, m := range that {
		if m == mark {
			n++
		}
	}

	return n
}

func (that Board) String() string {
	out := make([]byte, 0, BoardSize+2)
	for i, mark := range that {
		if i > 0 && i%3 == 0 {
			out = append(out, '/')
		}
		out = append(out, mark.String()...)
	}

	return string(out)
}
