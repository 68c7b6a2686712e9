package chess

import (
	"errors"
	"fmt"
	"slices"
)

// Tie is the Winner of a game that ended level.
const Tie = "Tie"

var ErrInvalidMove = errors.New("invalid move")

// State is one turn of a game. A State is never changed once built: Apply
// returns a fresh one, so a State handed to a reader stays valid.
type State struct {
	Grid       Grid
	Lines      LineSet
	LineOwners map[Line]int
	BoxOwners  map[Box]int
	Moves      []Line
	Players    [2]Player
	Current    int
	Scores     [2]int
	Over       bool
	Winner     string
	VsComputer bool
	Peer       bool
	LocalSeat  int
}

func NewGame(grid Grid, players [2]Player) State {
	return State{
		Grid:       grid,
		Lines:      make(LineSet),
		LineOwners: make(map[Line]int),
		BoxOwners:  make(map[Box]int),
		Players:    players,
		Current:    Player1,
	}
}

func NewLocalGame(grid Grid, vsComputer bool) State {
	s := NewGame(grid, LocalPlayers(vsComputer))
	s.VsComputer = vsComputer
	return s
}

// NewPeerGame starts a game between two devices. The host always takes
// seat 0 and moves first.
func NewPeerGame(grid Grid, host bool) State {
	s := NewGame(grid, PeerPlayers(host))
	s.Peer = true
	if host {
		s.LocalSeat = HostSeat
	} else {
		s.LocalSeat = PeerSeat
	}
	return s
}

func (s State) Clone() State {
	n := s
	n.Lines = s.Lines.Clone()
	n.LineOwners = make(map[Line]int, len(s.LineOwners)+1)
	for l, o := range s.LineOwners {
		n.LineOwners[l] = o
	}
	n.BoxOwners = make(map[Box]int, len(s.BoxOwners)+2)
	for b, o := range s.BoxOwners {
		n.BoxOwners[b] = o
	}
	n.Moves = slices.Clone(s.Moves)
	return n
}

// Apply places l for the player to move. It refuses lines outside the grid,
// lines already placed and any move once the game is over, leaving s as it
// was. A move that closes at least one box keeps the turn.
func (s State) Apply(l Line) (next State, boxes []Box, err error) {
	switch {
	case s.Over:
		return s, nil, fmt.Errorf("%w: game is over", ErrInvalidMove)
	case !s.Grid.Contains(l):
		return s, nil, fmt.Errorf("%w: %s is off the %dx%d grid", ErrInvalidMove, l, s.Grid.Rows, s.Grid.Cols)
	case s.Lines.Contains(l):
		return s, nil, fmt.Errorf("%w: %s already placed", ErrInvalidMove, l)
	}

	mover := s.Current
	next = s.Clone()
	next.Lines[l] = struct{}{}
	next.LineOwners[l] = mover
	next.Moves = append(next.Moves, l)

	boxes = next.Grid.CompletedBy(l, next.Lines)
	for _, b := range boxes {
		next.BoxOwners[b] = mover
	}
	next.Scores[mover] += len(boxes)

	if len(boxes) == 0 {
		next.Current = Other(mover)
	}

	if len(next.BoxOwners) == next.Grid.BoxCount() {
		next.Over = true
		next.Winner = next.winner()
	}
	return next, boxes, nil
}

func (s State) winner() string {
	switch {
	case s.Scores[Player1] > s.Scores[Player2]:
		return s.Players[Player1].Name
	case s.Scores[Player2] > s.Scores[Player1]:
		return s.Players[Player2].Name
	}
	return Tie
}

// Replay applies moves in order on top of s.
func (s State) Replay(moves ...Line) (State, error) {
	for i, l := range moves {
		next, _, err := s.Apply(l)
		if err != nil {
			return s, fmt.Errorf("move %d: %w", i+1, err)
		}
		s = next
	}
	return s, nil
}

func (s State) CurrentPlayer() Player {
	return s.Players[s.Current]
}

// IsMyTurn reports whether this device may move now. It is derived from the
// seat and never negotiated with the peer.
func (s State) IsMyTurn() bool {
	return !s.Peer || s.Current == s.LocalSeat
}

// ComputerToMove reports whether a single-player game waits on the computer.
func (s State) ComputerToMove() bool {
	return !s.Over && !s.Peer && s.VsComputer && s.CurrentPlayer().Kind == Computer
}

func (s State) FreeLines() []Line {
	return s.Grid.FreeLines(s.Lines)
}

func (s State) StepCount() int {
	return len(s.Lines)
}

// Check verifies the bookkeeping of a state that did not come out of Apply,
// such as one read back from disk.
func (s State) Check() error {
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if s.Current != Player1 && s.Current != Player2 {
		return fmt.Errorf("player to move %d out of range", s.Current)
	}
	if s.LocalSeat != Player1 && s.LocalSeat != Player2 {
		return fmt.Errorf("local seat %d out of range", s.LocalSeat)
	}
	if len(s.LineOwners) != len(s.Lines) {
		return fmt.Errorf("%d lines but %d line owners", len(s.Lines), len(s.LineOwners))
	}
	for l := range s.Lines {
		if !s.Grid.Contains(l) {
			return fmt.Errorf("line %s off the grid", l)
		}
		if o, c := s.LineOwners[l]; !c || (o != Player1 && o != Player2) {
			return fmt.Errorf("line %s has no owner", l)
		}
	}
	var scores [2]int
	for b, o := range s.BoxOwners {
		if !s.Grid.ContainsBox(b) || !IsBoxComplete(b, s.Lines) {
			return fmt.Errorf("box %s owned but not complete", b)
		}
		if o != Player1 && o != Player2 {
			return fmt.Errorf("box %s owned by %d", b, o)
		}
		scores[o]++
	}
	if n := len(s.Grid.CompletedBoxes(s.Lines)); n != len(s.BoxOwners) {
		return fmt.Errorf("%d complete boxes but %d owned", n, len(s.BoxOwners))
	}
	if scores != s.Scores {
		return fmt.Errorf("scores %v do not match owned boxes %v", s.Scores, scores)
	}
	if over := len(s.BoxOwners) == s.Grid.BoxCount(); over != s.Over {
		return fmt.Errorf("game over flag %t with %d of %d boxes", s.Over, len(s.BoxOwners), s.Grid.BoxCount())
	}
	switch {
	case s.Over && s.Winner != s.winner():
		return fmt.Errorf("winner %q, scores %v give %q", s.Winner, s.Scores, s.winner())
	case !s.Over && s.Winner != "":
		return fmt.Errorf("winner %q before the game is over", s.Winner)
	}
	// An empty move log is accepted; otherwise it must place every line once.
	if len(s.Moves) > 0 {
		logged := NewLineSet(s.Moves...)
		if len(logged) != len(s.Moves) {
			return errors.New("move log repeats a line")
		}
		if len(logged) != len(s.Lines) {
			return fmt.Errorf("%d moves logged for %d lines", len(s.Moves), len(s.Lines))
		}
		for l := range logged {
			if !s.Lines.Contains(l) {
				return fmt.Errorf("logged move %s is not placed", l)
			}
		}
	}
	return nil
}
