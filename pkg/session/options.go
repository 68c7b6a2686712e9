package session

import (
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
)

// Sender forwards a locally accepted line to the other device. Send must not
// block on the network.
type Sender interface {
	Send(l chess.Line) error
}

// Recorder keeps the result of a finished game.
type Recorder interface {
	Record(r chess.Result)
}

type Chooser interface {
	Choose(g chess.Grid, placed chess.LineSet) (chess.Line, bool)
}

// Listener receives every confirmed state together with the boxes the last
// move closed.
type Listener func(s chess.State, boxes []chess.Box)

type Option func(*Session)

func WithSender(sender Sender) Option {
	return func(s *Session) {
		s.sender = sender
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Session) {
		s.recorder = recorder
	}
}

func WithChooser(chooser Chooser) Option {
	return func(s *Session) {
		s.chooser = chooser
	}
}

func WithThinkDelay(d time.Duration) Option {
	return func(s *Session) {
		s.thinkDelay = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithStartedAt keeps the start time of a resumed game.
func WithStartedAt(t time.Time) Option {
	return func(s *Session) {
		s.startedAt = t
	}
}

func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listeners = append(s.listeners, l)
	}
}
