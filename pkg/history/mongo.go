package history

import (
	"context"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
)

// MongoStore shares history between devices through a mongo collection.
type MongoStore struct {
	model GameResultModel
}

func NewMongoStore(c MongoConf) *MongoStore {
	return &MongoStore{model: NewGameResultModel(c.Url, c.DataBaseName, c.Collection)}
}

func (s *MongoStore) Save(ctx context.Context, r chess.Result) error {
	return s.model.Insert(ctx, NewGameResult(r))
}

func (s *MongoStore) History(ctx context.Context) ([]chess.Result, error) {
	records, err := s.model.FindNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]chess.Result, 0, len(records))
	for _, rec := range records {
		results = append(results, rec.Result())
	}
	return results, nil
}

// Close is a no-op: mon shares its client between models.
func (s *MongoStore) Close() error {
	return nil
}
