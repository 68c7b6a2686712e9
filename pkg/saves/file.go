package saves

import (
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
)

// savedFile is the on-disk layout of one save.
type savedFile struct {
	FileName  string    `json:"fileName"`
	Game      savedGame `json:"gameState"`
	Timestamp int64     `json:"timestamp"`
	StartTime int64     `json:"startTime"`
}

type ownedLine struct {
	Line  message.LineMessage `json:"line"`
	Owner int                 `json:"owner"`
}

type ownedBox struct {
	Box   chess.Box `json:"box"`
	Owner int       `json:"owner"`
}

type savedGame struct {
	Rows       int                   `json:"rows"`
	Cols       int                   `json:"cols"`
	Players    [2]chess.Player       `json:"players"`
	Lines      []ownedLine           `json:"lines"`
	Boxes      []ownedBox            `json:"boxes"`
	Moves      []message.LineMessage `json:"moves"`
	Current    int                   `json:"currentPlayer"`
	Scores     [2]int                `json:"scores"`
	Over       bool                  `json:"isGameOver"`
	Winner     string                `json:"winner,omitempty"`
	VsComputer bool                  `json:"isVsComputer"`
}

func newSavedGame(s chess.State) savedGame {
	g := savedGame{
		Rows:       s.Grid.Rows,
		Cols:       s.Grid.Cols,
		Players:    s.Players,
		Current:    s.Current,
		Scores:     s.Scores,
		Over:       s.Over,
		Winner:     s.Winner,
		VsComputer: s.VsComputer,
	}
	// Map order is random; walking the grid keeps files stable.
	for _, l := range s.Grid.Lines() {
		if owner, ok := s.LineOwners[l]; ok {
			g.Lines = append(g.Lines, ownedLine{Line: message.NewLineMessage(l), Owner: owner})
		}
	}
	for _, b := range s.Grid.Boxes() {
		if owner, ok := s.BoxOwners[b]; ok {
			g.Boxes = append(g.Boxes, ownedBox{Box: b, Owner: owner})
		}
	}
	for _, l := range s.Moves {
		g.Moves = append(g.Moves, message.NewLineMessage(l))
	}
	return g
}

func (g savedGame) state() (chess.State, error) {
	s := chess.NewGame(chess.Grid{Rows: g.Rows, Cols: g.Cols}, g.Players)
	s.VsComputer = g.VsComputer
	s.Current = g.Current
	s.Scores = g.Scores
	s.Over = g.Over
	s.Winner = g.Winner

	for _, ol := range g.Lines {
		l, err := ol.Line.Line()
		if err != nil {
			return s, err
		}
		s.Lines[l] = struct{}{}
		s.LineOwners[l] = ol.Owner
	}
	for _, ob := range g.Boxes {
		s.BoxOwners[ob.Box] = ob.Owner
	}
	for _, m := range g.Moves {
		l, err := m.Line()
		if err != nil {
			return s, err
		}
		s.Moves = append(s.Moves, l)
	}

	if err := s.Check(); err != nil {
		return s, err
	}
	return s, nil
}

// Saved is one game read back from disk.
type Saved struct {
	ID        string
	State     chess.State
	SavedAt   time.Time
	StartedAt time.Time
}
