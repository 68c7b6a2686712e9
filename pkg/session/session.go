package session

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/assess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

const DefaultThinkDelay = 400 * time.Millisecond

var (
	ErrBusy        = errors.New("another move is being resolved")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotPeer     = errors.New("not a peer game")
)

type origin int8

const (
	fromLocal origin = iota
	fromRemote
	fromComputer
)

func (o origin) String() string {
	switch o {
	case fromLocal:
		return "local"
	case fromRemote:
		return "remote"
	}
	return "computer"
}

// Session owns the state of one game. Taps, lines from the peer and the
// computer all go through the same resolution path, one at a time.
type Session struct {
	logx.Logger
	uid message.GameUid

	mu        sync.RWMutex
	state     chess.State
	sender    Sender
	recorded  bool
	startedAt time.Time

	// scorekeeper is fixed at New so a dropped peer link does not make both
	// devices record the same game.
	scorekeeper bool

	busy atomic.Bool

	recorder   Recorder
	chooser    Chooser
	thinkDelay time.Duration
	now        func() time.Time
	listeners  []Listener

	ctx      context.Context
	cancel   context.CancelFunc
	routines *threading.RoutineGroup
}

func New(state chess.State, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	uid := message.NewGameUid()
	s := &Session{
		Logger:      logx.WithContext(ctx).WithFields(logx.Field("game", uid)),
		uid:         uid,
		state:       state,
		scorekeeper: !state.Peer || state.LocalSeat == chess.HostSeat,
		thinkDelay:  DefaultThinkDelay,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
		routines:    threading.NewRoutineGroup(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chooser == nil {
		s.chooser = assess.NewChooser(time.Now().UnixNano())
	}
	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}

	if state.ComputerToMove() {
		s.scheduleComputer()
	}
	return s
}

func (s *Session) Uid() message.GameUid {
	return s.uid
}

func (s *Session) Snapshot() chess.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// SubmitLocal plays l for this device's user.
func (s *Session) SubmitLocal(l chess.Line) error {
	return s.resolve(l, fromLocal)
}

// SubmitRemote plays l as received from the peer.
func (s *Session) SubmitRemote(l chess.Line) error {
	return s.resolve(l, fromRemote)
}

func (s *Session) resolve(l chess.Line, from origin) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}

	next, err := s.apply(l, from)
	s.busy.Store(false)

	if err != nil {
		if errors.Is(err, chess.ErrInvalidMove) {
			s.Infof("%s move ignored: %v", from, err)
		}
		return err
	}

	if next.ComputerToMove() {
		s.scheduleComputer()
	}
	return nil
}

// apply runs with the busy flag held.
func (s *Session) apply(l chess.Line, from origin) (chess.State, error) {
	s.mu.Lock()
	cur := s.state
	switch {
	case from == fromLocal && (!cur.IsMyTurn() || cur.ComputerToMove()):
		s.mu.Unlock()
		return cur, ErrNotYourTurn
	case from == fromRemote && !cur.Peer:
		s.mu.Unlock()
		return cur, ErrNotPeer
	}

	next, boxes, err := cur.Apply(l)
	if err != nil {
		s.mu.Unlock()
		return cur, err
	}
	s.state = next

	var sender Sender
	if from == fromLocal && next.Peer {
		sender = s.sender
	}

	record := next.Over && !s.recorded && s.scorekeeper
	if record {
		s.recorded = true
	}
	s.mu.Unlock()

	if sender != nil {
		if err := sender.Send(l); err != nil {
			s.Errorf("send %s to peer: %v", l, err)
		}
	}

	s.notify(next, boxes)

	if next.Over {
		s.Infow("game over", logx.Field("winner", next.Winner), logx.Field("scores", next.Scores))
	}
	if record && s.recorder != nil {
		r := next.Result(s.startedAt, s.now())
		r.Game = string(s.uid)
		s.recorder.Record(r)
	}
	return next, nil
}

// notify hands every listener its own copy of state.
func (s *Session) notify(state chess.State, boxes []chess.Box) {
	for _, listener := range s.listeners {
		listener(state.Clone(), slices.Clone(boxes))
	}
}

func (s *Session) scheduleComputer() {
	s.routines.RunSafe(func() {
		timer := time.NewTimer(s.thinkDelay)
		defer timer.Stop()

		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
		}

		for {
			state := s.Snapshot()
			if !state.ComputerToMove() {
				return
			}

			l, ok := s.chooser.Choose(state.Grid, state.Lines)
			if !ok {
				return
			}

			err := s.resolve(l, fromComputer)
			if !errors.Is(err, ErrBusy) {
				if err != nil {
					s.Errorf("computer move %s: %v", l, err)
				}
				return
			}

			select {
			case <-s.ctx.Done():
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	})
}

// Disconnect drops the peer link. The board is kept and play continues on
// this device alone.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if !s.state.Peer {
		s.mu.Unlock()
		return
	}
	state := s.state
	state.Peer = false
	s.state = state
	s.sender = nil
	s.mu.Unlock()

	s.Info("peer disconnected, continuing locally")
	s.notify(state, nil)
}

// Close cancels a pending computer move and waits for it.
func (s *Session) Close() {
	s.cancel()
	s.routines.Wait()
}
