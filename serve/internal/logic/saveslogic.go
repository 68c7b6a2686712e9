package logic

import (
	"context"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/saves"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/svc"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/types"
	"github.com/zeromicro/go-zero/core/logx"
)

type SavesLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSavesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SavesLogic {
	return &SavesLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func summary(s *saves.Saved) types.SaveSummary {
	st := s.State
	return types.SaveSummary{
		ID:         s.ID,
		SavedAt:    s.SavedAt,
		StartedAt:  s.StartedAt,
		Rows:       st.Grid.Rows,
		Cols:       st.Grid.Cols,
		Players:    [2]string{st.Players[0].Name, st.Players[1].Name},
		Scores:     st.Scores,
		Current:    st.CurrentPlayer().Name,
		Over:       st.Over,
		Winner:     st.Winner,
		VsComputer: st.VsComputer,
	}
}

func (l *SavesLogic) List() (*types.SavesResponse, error) {
	list, err := l.svcCtx.Saves.List()
	if err != nil {
		return nil, err
	}

	resp := &types.SavesResponse{Saves: make([]types.SaveSummary, 0, len(list))}
	for _, s := range list {
		resp.Saves = append(resp.Saves, summary(s))
	}
	return resp, nil
}

func (l *SavesLogic) Get(id string) (*types.SaveDetail, error) {
	s, err := l.svcCtx.Saves.Load(id)
	if err != nil {
		return nil, err
	}

	detail := &types.SaveDetail{
		SaveSummary: summary(s),
		Moves:       make([]message.LineMessage, 0, len(s.State.Moves)),
		Board:       l.svcCtx.Board.Render(s.State),
	}
	for _, m := range s.State.Moves {
		detail.Moves = append(detail.Moves, message.NewLineMessage(m))
	}
	return detail, nil
}

func (l *SavesLogic) Delete(id string) error {
	if err := l.svcCtx.Saves.Delete(id); err != nil {
		return err
	}
	l.Infof("deleted saved game %s", id)
	return nil
}
