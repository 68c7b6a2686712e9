package main

import (
	"flag"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/config"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/model"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	configFile = flag.String("f", "etc/engine.yaml", "the config file")
	joinFlag   = flag.String("join", "", "join the host at this address instead of hosting")
	gamesFlag  = flag.Int("games", 0, "games to host before exiting, 0 hosts forever")
	seedFlag   = flag.Int64("seed", 0, "chooser seed, 0 seeds from the clock")

	Pprof = model.Off

	Config config.Config
)

func init() {
	flag.Var(&Pprof, "pprof", "ON | OFF")
}

func initConfig() {
	flag.Parse()
	Config = config.MustLoad(*configFile)
	logx.MustSetup(Config.Log)
}
