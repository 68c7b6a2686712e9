package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/assess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/peer"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/session"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// Bot plays its seat of a peer game with the greedy chooser.
type Bot struct {
	logx.Logger
	chooser  *assess.Chooser
	delay    time.Duration
	recorder session.Recorder
}

func NewBot(seed int64, delay time.Duration, recorder session.Recorder) *Bot {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Bot{
		Logger:   logx.WithContext(context.Background()).WithFields(logx.Field("seed", seed)),
		chooser:  assess.NewChooser(seed),
		delay:    delay,
		recorder: recorder,
	}
}

// Play runs one game over conn. It returns the final state when the game is
// over or the peer is gone.
func (b *Bot) Play(ctx context.Context, conn *peer.Conn, host bool, grid chess.Grid) (chess.State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		sess     *session.Session
		overOnce sync.Once
		over     = make(chan struct{})
	)
	onState := func(state chess.State) {
		switch {
		case state.Over:
			overOnce.Do(func() { close(over) })
		case state.Peer && state.IsMyTurn():
			threading.GoSafe(func() { b.move(ctx, sess) })
		}
	}

	sess = session.New(chess.NewPeerGame(grid, host),
		session.WithSender(conn),
		session.WithRecorder(b.recorder),
		session.WithListener(func(state chess.State, _ []chess.Box) { onState(state) }),
	)
	defer sess.Close()

	runErr := make(chan error, 1)
	threading.GoSafe(func() {
		runErr <- conn.Run(ctx, sess.SubmitRemote)
	})
	onState(sess.Snapshot())

	select {
	case <-over:
	case err := <-runErr:
		if state := sess.Snapshot(); !state.Over {
			return state, err
		}
	case <-ctx.Done():
		return sess.Snapshot(), ctx.Err()
	}

	state := sess.Snapshot()
	b.Infow("game over", logx.Field("winner", state.Winner), logx.Field("scores", state.Scores))
	return state, nil
}

func (b *Bot) move(ctx context.Context, sess *session.Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.delay):
		}

		state := sess.Snapshot()
		if state.Over || !state.Peer || !state.IsMyTurn() {
			return
		}

		l, ok := b.chooser.Choose(state.Grid, state.Lines)
		if !ok {
			return
		}

		err := sess.SubmitLocal(l)
		if !errors.Is(err, session.ErrBusy) {
			if err != nil {
				b.Errorf("play %s: %v", l, err)
			}
			return
		}
	}
}
