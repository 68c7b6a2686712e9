package assess

import (
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
)

// Move is a candidate line evaluated against a position without placing it.
type Move struct {
	Grid   chess.Grid
	Placed chess.LineSet
	Line   chess.Line
}

func (m Move) Score() int {
	return len(m.Grid.ObtainsBoxes(m.Line, m.Placed))
}

func (m Move) WillChangeTurn() bool {
	return m.Score() == 0
}
