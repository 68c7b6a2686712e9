package ui

import (
	"fmt"
	"strings"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/logrusorgru/aurora"
)

const (
	Dot        = "●"
	Horizontal = "───"
	Vertical   = "│"
	cellWidth  = 4
)

// Board draws game states as text. Without colors it prints the owner's
// number in closed boxes and nothing else differs.
type Board struct {
	au aurora.Aurora
}

func NewBoard(colors bool) *Board {
	return &Board{au: aurora.NewAurora(colors)}
}

func (b *Board) playerColor(owner int, s string) aurora.Value {
	if owner == chess.Player1 {
		return b.au.Blue(s)
	}
	return b.au.Red(s)
}

func (b *Board) line(s chess.State, l chess.Line, drawn string) string {
	owner, ok := s.LineOwners[l]
	if !ok {
		return strings.Repeat(" ", len([]rune(drawn)))
	}
	v := b.playerColor(owner, drawn)
	if n := len(s.Moves); n > 0 && s.Moves[n-1] == l {
		v = b.au.Bold(b.au.Yellow(drawn))
	}
	return v.String()
}

func (b *Board) Render(s chess.State) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", cellWidth))
	for c := range s.Grid.Cols {
		sb.WriteString(fmt.Sprintf("%-*d", cellWidth, c))
	}
	sb.WriteString("\n")

	for r := range s.Grid.Rows {
		sb.WriteString(fmt.Sprintf("%-*d", cellWidth, r))
		for c := range s.Grid.Cols {
			sb.WriteString(Dot)
			if c < s.Grid.Cols-1 {
				sb.WriteString(b.line(s, chess.H(r, c), Horizontal))
			}
		}
		sb.WriteString("\n")

		if r == s.Grid.Rows-1 {
			break
		}

		sb.WriteString(strings.Repeat(" ", cellWidth))
		for c := range s.Grid.Cols {
			sb.WriteString(b.line(s, chess.V(r, c), Vertical))
			if c < s.Grid.Cols-1 {
				sb.WriteString(b.box(s, chess.Box{Row: r, Col: c}))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (b *Board) box(s chess.State, box chess.Box) string {
	owner, ok := s.BoxOwners[box]
	if !ok {
		return "   "
	}
	return b.playerColor(owner, fmt.Sprintf(" %d ", owner+1)).String()
}

// Status is the score line shown under the board.
func (b *Board) Status(s chess.State) string {
	p1, p2 := s.Players[chess.Player1], s.Players[chess.Player2]
	score := fmt.Sprintf("%s %d : %d %s",
		b.playerColor(chess.Player1, p1.Name), s.Scores[chess.Player1],
		s.Scores[chess.Player2], b.playerColor(chess.Player2, p2.Name))

	switch {
	case s.Over && s.Winner == chess.Tie:
		return score + "  game over, it's a tie"
	case s.Over:
		return score + "  game over, " + b.au.Bold(s.Winner).String() + " wins"
	case s.Peer && s.IsMyTurn():
		return score + "  your turn"
	case s.Peer:
		return score + "  waiting for opponent"
	}
	return score + "  next: " + b.playerColor(s.Current, s.CurrentPlayer().Name).String()
}
