package main

import (
	"flag"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/config"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/model"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	ModeLocal    = "local"
	ModeComputer = "computer"
	ModeHost     = "host"
	ModeJoin     = "join"
)

var (
	configFile = flag.String("f", "etc/client.yaml", "the config file")
	modeFlag   = flag.String("mode", ModeComputer, "local | computer | host | join")
	loadFlag   = flag.String("load", "", "resume a saved game by id")
	addrFlag   = flag.String("addr", "", "peer address, overrides Peer.Addr")

	Colors = model.On
	Pprof  = model.Off

	Config config.Config
)

func init() {
	flag.Var(&Colors, "colors", "ON | OFF")
	flag.Var(&Pprof, "pprof", "ON | OFF")
}

func initConfig() {
	flag.Parse()
	Config = config.MustLoad(*configFile)
	logx.MustSetup(Config.Log)

	if *addrFlag != "" {
		Config.Peer.Addr = *addrFlag
	}
}
