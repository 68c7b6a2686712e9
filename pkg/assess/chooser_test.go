package assess

import (
	"testing"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseSingleCompletingMove(t *testing.T) {
	g := chess.Grid{Rows: 3, Cols: 3}
	placed := chess.NewLineSet(chess.H(0, 0), chess.H(1, 0), chess.V(0, 0))

	require.Equal(t, []chess.Line{chess.V(0, 1)}, CompletingMoves(g, placed))
	for seed := range int64(50) {
		l, ok := NewChooser(seed).Choose(g, placed)
		require.True(t, ok)
		assert.Equal(t, chess.V(0, 1), l)
	}
}

func TestChoosePrefersCompletion(t *testing.T) {
	g := chess.Grid{Rows: 3, Cols: 3}
	// Boxes (0,0) and (1,1) each miss one side.
	placed := chess.NewLineSet(
		chess.H(0, 0), chess.H(1, 0), chess.V(0, 0),
		chess.H(1, 1), chess.H(2, 1), chess.V(1, 2),
	)
	want := []chess.Line{chess.V(0, 1), chess.V(1, 1)}
	assert.ElementsMatch(t, want, CompletingMoves(g, placed))

	c := NewChooser(7)
	seen := make(map[chess.Line]bool)
	for range 200 {
		l, ok := c.Choose(g, placed)
		require.True(t, ok)
		require.Contains(t, want, l)
		seen[l] = true
	}
	assert.Len(t, seen, 2, "both completing lines should come up")
}

func TestChooseRandomLegalMove(t *testing.T) {
	g := chess.Grid{Rows: 4, Cols: 4}
	placed := chess.NewLineSet(chess.H(0, 0), chess.V(2, 3))
	require.Empty(t, CompletingMoves(g, placed))

	c := NewChooser(1)
	for range 100 {
		l, ok := c.Choose(g, placed)
		require.True(t, ok)
		assert.True(t, g.Contains(l))
		assert.False(t, placed.Contains(l))
	}
}

func TestChooseNoMoveLeft(t *testing.T) {
	g := chess.Grid{Rows: 2, Cols: 2}
	_, ok := NewChooser(1).Choose(g, chess.NewLineSet(g.Lines()...))
	assert.False(t, ok)

	_, ok = ChooseMove(g, chess.NewLineSet(g.Lines()...))
	assert.False(t, ok)
}

func TestMoveScore(t *testing.T) {
	g := chess.Grid{Rows: 2, Cols: 3}
	placed := chess.NewLineSet(chess.H(0, 0), chess.H(1, 0), chess.V(0, 0), chess.H(0, 1), chess.H(1, 1), chess.V(0, 2))
	m := Move{Grid: g, Placed: placed, Line: chess.V(0, 1)}
	assert.Equal(t, 2, m.Score())
	assert.False(t, m.WillChangeTurn())
}
