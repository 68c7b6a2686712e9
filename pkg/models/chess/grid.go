package chess

import (
	"errors"
	"fmt"
)

const (
	MinDots = 2
	MaxDots = 10

	DefaultRows = 4
	DefaultCols = 4
)

var ErrGridSize = errors.New("grid size out of range")

// Grid holds the dot counts of a board; a Grid of 4x4 dots has 3x3 boxes.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func NewGrid(rows, cols int) (Grid, error) {
	g := Grid{Rows: rows, Cols: cols}
	return g, g.Validate()
}

func (g Grid) Validate() error {
	if g.Rows < MinDots || g.Rows > MaxDots || g.Cols < MinDots || g.Cols > MaxDots {
		return fmt.Errorf("%w: %dx%d dots, want %d..%d", ErrGridSize, g.Rows, g.Cols, MinDots, MaxDots)
	}
	return nil
}

func (g Grid) LineCount() int {
	return g.Rows*(g.Cols-1) + (g.Rows-1)*g.Cols
}

func (g Grid) BoxCount() int {
	return (g.Rows - 1) * (g.Cols - 1)
}

// Lines lists every horizontal line row by row, then every vertical line.
func (g Grid) Lines() (lines []Line) {
	lines = make([]Line, 0, g.LineCount())
	for r := range g.Rows {
		for c := range g.Cols - 1 {
			lines = append(lines, H(r, c))
		}
	}
	for r := range g.Rows - 1 {
		for c := range g.Cols {
			lines = append(lines, V(r, c))
		}
	}
	return
}

func (g Grid) Boxes() (boxes []Box) {
	boxes = make([]Box, 0, g.BoxCount())
	for r := range g.Rows - 1 {
		for c := range g.Cols - 1 {
			boxes = append(boxes, Box{Row: r, Col: c})
		}
	}
	return
}

func (g Grid) Contains(l Line) bool {
	if l.Row < 0 || l.Col < 0 {
		return false
	}
	switch l.Orientation {
	case Horizontal:
		return l.Row < g.Rows && l.Col < g.Cols-1
	case Vertical:
		return l.Row < g.Rows-1 && l.Col < g.Cols
	}
	return false
}

func (g Grid) ContainsBox(b Box) bool {
	return b.Row >= 0 && b.Col >= 0 && b.Row < g.Rows-1 && b.Col < g.Cols-1
}

// AdjacentBoxes returns the one or two boxes a line borders. Only these
// need re-checking after the line is placed.
func (g Grid) AdjacentBoxes(l Line) (boxes []Box) {
	boxes = make([]Box, 0, 2)
	switch l.Orientation {
	case Horizontal:
		if l.Row-1 >= 0 {
			boxes = append(boxes, Box{Row: l.Row - 1, Col: l.Col})
		}
		if l.Row < g.Rows-1 {
			boxes = append(boxes, Box{Row: l.Row, Col: l.Col})
		}
	case Vertical:
		if l.Col-1 >= 0 {
			boxes = append(boxes, Box{Row: l.Row, Col: l.Col - 1})
		}
		if l.Col < g.Cols-1 {
			boxes = append(boxes, Box{Row: l.Row, Col: l.Col})
		}
	}
	return
}
