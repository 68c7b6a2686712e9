package history

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/mon"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ GameResultModel = (*customGameResultModel)(nil)

type (
	// GameResultModel is an interface to be customized, add more methods here,
	// and implement the added methods in customGameResultModel.
	GameResultModel interface {
		gameResultModel
		FindNewestFirst(ctx context.Context) ([]*GameResult, error)
	}

	gameResultModel interface {
		Insert(ctx context.Context, data *GameResult) error
	}

	defaultGameResultModel struct {
		conn *mon.Model
	}

	customGameResultModel struct {
		*defaultGameResultModel
	}
)

// NewGameResultModel returns a model for the mongo.
func NewGameResultModel(url, db, collection string) GameResultModel {
	conn := mon.MustNewModel(url, db, collection)
	return &customGameResultModel{
		defaultGameResultModel: &defaultGameResultModel{conn: conn},
	}
}

func (m *defaultGameResultModel) Insert(ctx context.Context, data *GameResult) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
		data.CreateAt = time.Now()
	}

	_, err := m.conn.InsertOne(ctx, data)
	return err
}

func (m *customGameResultModel) FindNewestFirst(ctx context.Context) ([]*GameResult, error) {
	var data []*GameResult
	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}, {Key: "_id", Value: -1}})
	if err := m.conn.Find(ctx, &data, bson.M{}, opts); err != nil {
		return nil, err
	}
	return data, nil
}
