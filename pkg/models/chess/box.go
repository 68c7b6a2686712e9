package chess

import "fmt"

// Box is a unit cell named by its top-left dot.
type Box struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Lines returns top, bottom, left and right.
func (b Box) Lines() [4]Line {
	return [...]Line{
		H(b.Row, b.Col),
		H(b.Row+1, b.Col),
		V(b.Row, b.Col),
		V(b.Row, b.Col+1),
	}
}

func (b Box) String() string {
	return fmt.Sprintf("[%d, %d]", b.Row, b.Col)
}
