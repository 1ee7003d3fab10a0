package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

func TestView_Status(t *testing.T) {
	tests := []struct {
		name string
		view View
		want string
	}{
		{
			name: "X wins",
			view: View{Outcome: entity.OutcomeWonByX, Mode: entity.ModeVsComputer, Turn: entity.MarkO},
			want: "Player X wins!",
		},
		{
			name: "O wins",
			view: View{Outcome: entity.OutcomeWonByO, Mode: entity.ModeTwoPlayer, Turn: entity.MarkX},
			want: "Player O wins!",
		},
		{
			name: "Draw",
			view: View{Outcome: entity.OutcomeDraw, Mode: entity.ModeTwoPlayer, Turn: entity.MarkO},
			want: "It's a draw!",
		},
		{
			name: "Two-player X to move",
			view: View{Mode: entity.ModeTwoPlayer, Turn: entity.MarkX},
			want: "Player X's turn",
		},
		{
			name: "Two-player O to move",
			view: View{Mode: entity.ModeTwoPlayer, Turn: entity.MarkO},
			want: "Player O's turn",
		},
		{
			name: "Vs-computer human to move",
			view: View{Mode: entity.ModeVsComputer, Turn: entity.MarkX},
			want: "Your turn",
		},
		{
			name: "Vs-computer computer thinking",
			view: View{Mode: entity.ModeVsComputer, Turn: entity.MarkO, AIThinking: true},
			want: "AI is thinking…",
		},
		{
			name: "Vs-computer computer to move",
			view: View{Mode: entity.ModeVsComputer, Turn: entity.MarkO},
			want: "AI's turn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.Status())
		})
	}
}

func TestView_CellEnabled(t *testing.T) {
	t.Run("Empty cells of a running game are enabled", func(t *testing.T) {
		view := View{Board: entity.Board{x, e, e, e, e, e, e, e, e}}

		assert.False(t, view.CellEnabled(0))
		assert.True(t, view.CellEnabled(1))
		assert.False(t, view.CellEnabled(9))
	})

	t.Run("Nothing is enabled while the computer thinks", func(t *testing.T) {
		view := View{AIThinking: true}

		for cell := 0; cell < entity.BoardSize; cell++ {
			assert.False(t, view.CellEnabled(cell))
		}
	})

	t.Run("Nothing is enabled after the game ends", func(t *testing.T) {
		view := View{Board: entity.Board{x, x, x, o, o, e, e, e, e}, Outcome: entity.OutcomeWonByX}

		assert.False(t, view.CellEnabled(5))
	})
}
