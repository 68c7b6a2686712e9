package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/history"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/pprof"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/saves"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

func main() {
	initConfig()
	defer logx.Close()

	if Pprof {
		pprof.Start("")
	}

	store, err := history.New(Config.History)
	logx.Must(err)
	defer store.Close()

	recorder := history.NewRecorder(store, Config.History.FlushInterval)
	defer recorder.Close()

	savesStore, err := saves.NewStore(Config.Saves.Dir)
	logx.Must(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := NewGame(os.Stdout, bool(Colors), store, recorder, savesStore)
	defer g.Close()

	if err = g.Open(ctx, *modeFlag, *loadFlag); err != nil {
		fmt.Println(err)
		return
	}
	Loop(ctx, g, os.Stdin)
}

// Loop reads commands until quit, end of input or ctx ends.
func Loop(ctx context.Context, g *Game, in io.Reader) {
	lines := make(chan string)
	threading.GoSafe(func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			cmd, err := ParseCommand(line)
			if err != nil {
				g.printf("%v\n", err)
				continue
			}
			if g.Handle(ctx, cmd) {
				return
			}
		}
	}
}
