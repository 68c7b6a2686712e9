package logic

import (
	"context"
	"errors"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/svc"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/types"
	"github.com/zeromicro/go-zero/core/logx"
)

var ErrResultNotFound = errors.New("no result for that game")

type HistoryLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryLogic {
	return &HistoryLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *HistoryLogic) History() (*types.HistoryResponse, error) {
	results, err := l.svcCtx.History.History(l.ctx)
	if err != nil {
		l.Errorf("read history: %v", err)
		return nil, err
	}

	if results == nil {
		results = []chess.Result{}
	}
	return &types.HistoryResponse{Results: results}, nil
}

// Game finds the result stored for one session uid.
func (l *HistoryLogic) Game(uid string) (*chess.Result, error) {
	game, err := message.ParseGameUid(uid)
	if err != nil {
		return nil, err
	}

	results, err := l.svcCtx.History.History(l.ctx)
	if err != nil {
		l.Errorf("read history: %v", err)
		return nil, err
	}

	for i := range results {
		if results[i].Game == string(game) {
			return &results[i], nil
		}
	}
	return nil, ErrResultNotFound
}
