package config

import (
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/history"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	TransportTCP       = "tcp"
	TransportWebSocket = "ws"
)

type Config struct {
	Log     logx.LogConf
	Game    GameConf
	Peer    PeerConf
	History history.Conf
	Saves   SavesConf
	Http    HttpConf
}

type GameConf struct {
	Rows       int           `json:",default=4,range=[2:10]"`
	Cols       int           `json:",default=4,range=[2:10]"`
	ThinkDelay time.Duration `json:",default=400ms"`
}

func (c GameConf) Grid() (chess.Grid, error) {
	return chess.NewGrid(c.Rows, c.Cols)
}

type PeerConf struct {
	Transport   string        `json:",default=tcp,options=tcp|ws"`
	Addr        string        `json:",default=127.0.0.1:7878"`
	DialTimeout time.Duration `json:",default=10s"`
}

type SavesConf struct {
	Dir string `json:",default=data/saves"`
}

type HttpConf struct {
	Addr  string `json:",default=127.0.0.1:8080"`
	Pprof bool   `json:",optional"`
}

func MustLoad(path string) (c Config) {
	conf.MustLoad(path, &c)
	return
}
