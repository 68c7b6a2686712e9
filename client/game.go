package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/config"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/history"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/model"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/ui"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/peer"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/saves"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/session"
	"github.com/zeromicro/go-zero/core/threading"
)

const thinkSteps = 20

// Game is the terminal front end. It owns the running session and swaps it
// when a new game starts or a save is loaded.
type Game struct {
	out      io.Writer
	board    *ui.Board
	history  history.Store
	recorder session.Recorder
	saves    *saves.Store

	outMu sync.Mutex

	mu   sync.Mutex
	sess *session.Session
	conn *peer.Conn

	thinkMu     sync.Mutex
	cancelThink context.CancelFunc
}

func NewGame(out io.Writer, colors bool, store history.Store, recorder session.Recorder, savesStore *saves.Store) *Game {
	return &Game{
		out:      out,
		board:    ui.NewBoard(colors),
		history:  store,
		recorder: recorder,
		saves:    savesStore,
	}
}

func (g *Game) printf(format string, args ...any) {
	g.outMu.Lock()
	defer g.outMu.Unlock()

	fmt.Fprintf(g.out, format, args...)
}

func (g *Game) session() *session.Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sess
}

// start replaces the running session with one playing state.
func (g *Game) start(state chess.State, opts ...session.Option) *session.Session {
	opts = append([]session.Option{
		session.WithRecorder(g.recorder),
		session.WithThinkDelay(Config.Game.ThinkDelay),
		session.WithListener(g.onUpdate),
	}, opts...)

	g.stopThinking()
	g.mu.Lock()
	old, oldConn := g.sess, g.conn
	g.sess, g.conn = nil, nil
	g.mu.Unlock()
	if oldConn != nil {
		_ = oldConn.Close()
	}
	if old != nil {
		old.Close()
	}

	g.printf("%s", g.board.Render(state))
	g.printf("%s\n", g.board.Status(state))

	if state.ComputerToMove() {
		g.think()
	}
	sess := session.New(state, opts...)
	g.printf("game %s\n", sess.Uid().Short())
	g.mu.Lock()
	g.sess = sess
	g.mu.Unlock()
	return sess
}

func (g *Game) onUpdate(state chess.State, boxes []chess.Box) {
	g.stopThinking()

	g.printf("%s", g.board.Render(state))
	if n := len(boxes); n > 0 {
		g.printf("%s closed %d box(es)\n", state.CurrentPlayer().Name, n)
	}
	g.printf("%s\n", g.board.Status(state))

	if state.Over {
		g.printf("type new to play again\n")
	}
	if state.ComputerToMove() {
		g.think()
	}
}

func (g *Game) think() {
	ctx, cancel := context.WithCancel(context.Background())
	g.thinkMu.Lock()
	g.cancelThink = cancel
	g.thinkMu.Unlock()

	threading.GoSafe(func() {
		g.outMu.Lock()
		defer g.outMu.Unlock()

		bar := model.NewBar(thinkSteps, "Computer is thinking", g.out)
		bar.Fill(ctx, Config.Game.ThinkDelay, thinkSteps)
		fmt.Fprintln(g.out)
	})
}

func (g *Game) stopThinking() {
	g.thinkMu.Lock()
	defer g.thinkMu.Unlock()

	if g.cancelThink != nil {
		g.cancelThink()
		g.cancelThink = nil
	}
}

func (g *Game) grid() chess.Grid {
	grid, err := Config.Game.Grid()
	if err != nil {
		g.printf("%v, using %dx%d\n", err, chess.DefaultRows, chess.DefaultCols)
		return chess.Grid{Rows: chess.DefaultRows, Cols: chess.DefaultCols}
	}
	return grid
}

// Open starts the first game of the process.
func (g *Game) Open(ctx context.Context, mode, load string) error {
	if load != "" {
		return g.load(load)
	}

	switch mode {
	case ModeLocal, ModeComputer:
		g.start(chess.NewLocalGame(g.grid(), mode == ModeComputer))
		return nil
	case ModeHost, ModeJoin:
		return g.connect(ctx, mode == ModeHost)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

func (g *Game) connect(ctx context.Context, host bool) error {
	var sess *session.Session
	opts := []peer.Option{
		peer.WithStatusHandler(func(s peer.Status) {
			g.printf("connection: %s\n", s)
		}),
		peer.WithDisconnectHandler(func(err error) {
			if g.session() != sess {
				return
			}
			g.printf("opponent left (%v), the game goes on here\n", err)
			sess.Disconnect()
		}),
	}

	conn, err := dial(ctx, Config.Peer, host, opts...)
	if err != nil {
		return err
	}

	sess = g.start(chess.NewPeerGame(g.grid(), host), session.WithSender(conn))
	g.mu.Lock()
	g.conn = conn
	g.mu.Unlock()

	threading.GoSafe(func() {
		_ = conn.Run(ctx, sess.SubmitRemote)
	})
	return nil
}

func dial(ctx context.Context, c config.PeerConf, host bool, opts ...peer.Option) (*peer.Conn, error) {
	if host {
		if c.Transport == config.TransportWebSocket {
			return peer.HostWebSocket(ctx, c.Addr, opts...)
		}
		return peer.Host(ctx, c.Addr, opts...)
	}

	ctx, cancel := context.WithTimeout(ctx, c.DialTimeout)
	defer cancel()
	if c.Transport == config.TransportWebSocket {
		return peer.JoinWebSocket(ctx, "ws://"+c.Addr+"/", opts...)
	}
	return peer.Join(ctx, c.Addr, opts...)
}

func (g *Game) load(id string) error {
	saved, err := g.saves.Load(id)
	if err != nil {
		return err
	}

	g.printf("resuming %s from %s\n", id, message.NewTimeStamp(saved.SavedAt))
	g.start(saved.State, session.WithStartedAt(saved.StartedAt))
	return nil
}

// Handle runs one command and reports whether the user wants to leave.
func (g *Game) Handle(ctx context.Context, cmd Command) (quit bool) {
	sess := g.session()

	switch cmd.Kind {
	case CmdMove:
		if sess == nil {
			g.printf("no game running, type new\n")
			return
		}
		switch err := sess.SubmitLocal(cmd.Line); {
		case err == nil:
		case errors.Is(err, session.ErrNotYourTurn):
			g.printf("not your turn\n")
		case errors.Is(err, session.ErrBusy):
			g.printf("still placing the last line, try again\n")
		default:
			g.printf("%v\n", err)
		}
	case CmdSave:
		if sess == nil {
			return
		}
		id, err := g.saves.Save(sess.Snapshot(), sess.StartedAt())
		if err != nil {
			g.printf("not saved: %v\n", err)
			return
		}
		g.printf("saved as %s\n", id)
	case CmdSaves:
		g.printSaves()
	case CmdLoad:
		if err := g.load(cmd.Arg); err != nil {
			g.printf("%v\n", err)
		}
	case CmdDelete:
		if err := g.saves.Delete(cmd.Arg); err != nil {
			g.printf("%v\n", err)
			return
		}
		g.printf("deleted %s\n", cmd.Arg)
	case CmdNew:
		g.start(chess.NewLocalGame(g.grid(), cmd.Arg == ModeComputer))
	case CmdHistory:
		g.printHistory(ctx)
	case CmdBoard:
		if sess != nil {
			state := sess.Snapshot()
			g.printf("%s%s\n", g.board.Render(state), g.board.Status(state))
		}
	case CmdHelp:
		g.printf("%s\n", helpText)
	case CmdQuit:
		return true
	}
	return false
}

func (g *Game) printSaves() {
	list, err := g.saves.List()
	if err != nil {
		g.printf("%v\n", err)
		return
	}
	if len(list) == 0 {
		g.printf("no saved games\n")
		return
	}

	for _, s := range list {
		st := s.State
		g.printf("%s  %s  %dx%d  %s %d : %d %s\n", s.ID, message.NewTimeStamp(s.SavedAt),
			st.Grid.Rows, st.Grid.Cols,
			st.Players[chess.Player1].Name, st.Scores[chess.Player1],
			st.Scores[chess.Player2], st.Players[chess.Player2].Name)
	}
}

func (g *Game) printHistory(ctx context.Context) {
	results, err := g.history.History(ctx)
	if err != nil {
		g.printf("%v\n", err)
		return
	}
	if len(results) == 0 {
		g.printf("no finished games yet\n")
		return
	}

	for _, r := range results {
		winner := r.Winner
		if winner == "" {
			winner = "-"
		}
		g.printf("%s  %s vs %s  winner: %s  (%s)\n", message.NewTimeStamp(r.StartedAt),
			r.PlayerOne, r.PlayerTwo, winner, r.Duration.Round(time.Second))
	}
}

func (g *Game) Close() {
	g.stopThinking()
	g.mu.Lock()
	sess, conn := g.sess, g.conn
	g.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	if sess != nil {
		sess.Close()
	}
}
