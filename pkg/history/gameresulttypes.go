package history

import (
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GameResult struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CreateAt time.Time          `bson:"createAt,omitempty" json:"createAt,omitempty"`

	Game       string    `bson:"game,omitempty" json:"game,omitempty"`
	PlayerOne  string    `bson:"playerOne" json:"playerOne"`
	PlayerTwo  string    `bson:"playerTwo" json:"playerTwo"`
	Winner     string    `bson:"winner,omitempty" json:"winner,omitempty"`
	StartedAt  time.Time `bson:"startedAt" json:"startedAt"`
	DurationMs int64     `bson:"durationMs" json:"durationMs"`
	VsComputer bool      `bson:"vsComputer" json:"vsComputer"`
}

func NewGameResult(r chess.Result) *GameResult {
	return &GameResult{
		Game:       r.Game,
		PlayerOne:  r.PlayerOne,
		PlayerTwo:  r.PlayerTwo,
		Winner:     r.Winner,
		StartedAt:  r.StartedAt,
		DurationMs: r.Duration.Milliseconds(),
		VsComputer: r.VsComputer,
	}
}

func (g *GameResult) Result() chess.Result {
	return chess.Result{
		Game:       g.Game,
		PlayerOne:  g.PlayerOne,
		PlayerTwo:  g.PlayerTwo,
		Winner:     g.Winner,
		StartedAt:  g.StartedAt,
		Duration:   time.Duration(g.DurationMs) * time.Millisecond,
		VsComputer: g.VsComputer,
	}
}
