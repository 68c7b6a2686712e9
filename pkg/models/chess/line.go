package chess

import (
	"errors"
	"fmt"
)

type Orientation int8

const (
	Horizontal Orientation = iota
	Vertical
)

var ErrOrientation = errors.New("unknown orientation")

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "HORIZONTAL"
	case Vertical:
		return "VERTICAL"
	}
	return fmt.Sprintf("Orientation(%d)", int8(o))
}

func (o Orientation) MarshalText() ([]byte, error) {
	switch o {
	case Horizontal, Vertical:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrOrientation, int8(o))
}

func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "HORIZONTAL":
		*o = Horizontal
	case "VERTICAL":
		*o = Vertical
	default:
		return fmt.Errorf("%w: %q", ErrOrientation, text)
	}
	return nil
}

// Line is the edge between two neighbouring dots. A Horizontal line at
// (Row, Col) joins dot (Row, Col) to (Row, Col+1); a Vertical one joins
// (Row, Col) to (Row+1, Col).
type Line struct {
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Orientation Orientation `json:"orientation"`
}

func H(row, col int) Line { return Line{Row: row, Col: col, Orientation: Horizontal} }

func V(row, col int) Line { return Line{Row: row, Col: col, Orientation: Vertical} }

func (l Line) String() string {
	if l.Orientation == Horizontal {
		return fmt.Sprintf("(%d, %d) -> (%d, %d)", l.Row, l.Col, l.Row, l.Col+1)
	}
	return fmt.Sprintf("(%d, %d) -> (%d, %d)", l.Row, l.Col, l.Row+1, l.Col)
}
