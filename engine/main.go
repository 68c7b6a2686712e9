package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/config"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/history"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/peer"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/pprof"
	"github.com/zeromicro/go-zero/core/logx"
)

func main() {
	initConfig()
	defer logx.Close()

	if Pprof {
		pprof.Start("")
	}

	grid, err := Config.Game.Grid()
	logx.Must(err)

	store, err := history.New(Config.History)
	logx.Must(err)
	defer store.Close()

	recorder := history.NewRecorder(store, Config.History.FlushInterval)
	defer recorder.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := NewBot(*seedFlag, Config.Game.ThinkDelay, recorder)
	host := *joinFlag == ""
	if !host {
		Config.Peer.Addr = *joinFlag
	}

	for played := 0; ctx.Err() == nil; played++ {
		if host && *gamesFlag > 0 && played == *gamesFlag {
			return
		}

		conn, err := connect(ctx, Config.Peer, host)
		if err != nil {
			logx.Errorf("connect: %v", err)
			if !host {
				return
			}
			continue
		}

		state, err := bot.Play(ctx, conn, host, grid)
		_ = conn.Close()
		if err != nil {
			logx.Errorf("game ended early after %d lines: %v", state.StepCount(), err)
		}

		if !host {
			return
		}
	}
}

func connect(ctx context.Context, c config.PeerConf, host bool) (*peer.Conn, error) {
	status := peer.WithStatusHandler(func(s peer.Status) {
		logx.Infof("connection %s", s)
	})

	if host {
		if c.Transport == config.TransportWebSocket {
			return peer.HostWebSocket(ctx, c.Addr, status)
		}
		return peer.Host(ctx, c.Addr, status)
	}

	ctx, cancel := context.WithTimeout(ctx, c.DialTimeout)
	defer cancel()
	if c.Transport == config.TransportWebSocket {
		return peer.JoinWebSocket(ctx, "ws://"+c.Addr+"/", status)
	}
	return peer.Join(ctx, c.Addr, status)
}
