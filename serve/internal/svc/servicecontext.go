package svc

import (
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/config"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/history"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/ui"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/saves"
)

type ServiceContext struct {
	Config  config.Config
	History history.Store
	Saves   *saves.Store
	Board   *ui.Board
}

func NewServiceContext(c config.Config) (*ServiceContext, error) {
	store, err := history.New(c.History)
	if err != nil {
		return nil, err
	}

	savesStore, err := saves.NewStore(c.Saves.Dir)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &ServiceContext{
		Config:  c,
		History: store,
		Saves:   savesStore,
		Board:   ui.NewBoard(false),
	}, nil
}

func (s *ServiceContext) Close() error {
	return s.History.Close()
}
