package chess

// LineSet is a set of placed lines.
type LineSet map[Line]struct{}

func NewLineSet(lines ...Line) LineSet {
	s := make(LineSet, len(lines))
	for _, l := range lines {
		s[l] = struct{}{}
	}
	return s
}

func (s LineSet) Contains(l Line) bool {
	_, c := s[l]
	return c
}

func (s LineSet) Clone() LineSet {
	n := make(LineSet, len(s)+1)
	for l := range s {
		n[l] = struct{}{}
	}
	return n
}

// Append returns a copy of the set holding l as well.
func (s LineSet) Append(l Line) LineSet {
	n := s.Clone()
	n[l] = struct{}{}
	return n
}

func (s LineSet) LinesInBox(b Box) (count int) {
	for _, l := range b.Lines() {
		if s.Contains(l) {
			count++
		}
	}
	return
}

func IsBoxComplete(b Box, placed LineSet) bool {
	return placed.LinesInBox(b) == 4
}

// CompletedBy returns the boxes closed by l, where placed already holds l.
// l must not have been placed before, so none of the returned boxes was
// complete before this move.
func (g Grid) CompletedBy(l Line, placed LineSet) (boxes []Box) {
	for _, b := range g.AdjacentBoxes(l) {
		if IsBoxComplete(b, placed) {
			boxes = append(boxes, b)
		}
	}
	return
}

// ObtainsBoxes returns the boxes that placing l would close, leaving placed
// untouched. It is empty for a line that is already placed.
func (g Grid) ObtainsBoxes(l Line, placed LineSet) (boxes []Box) {
	if placed.Contains(l) {
		return
	}
	for _, b := range g.AdjacentBoxes(l) {
		if placed.LinesInBox(b) == 3 {
			boxes = append(boxes, b)
		}
	}
	return
}

func (g Grid) FreeLines(placed LineSet) (free []Line) {
	for _, l := range g.Lines() {
		if !placed.Contains(l) {
			free = append(free, l)
		}
	}
	return
}

func (g Grid) CompletedBoxes(placed LineSet) (boxes []Box) {
	for _, b := range g.Boxes() {
		if IsBoxComplete(b, placed) {
			boxes = append(boxes, b)
		}
	}
	return
}
