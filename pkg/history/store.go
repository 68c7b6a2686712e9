package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	SQLite = "sqlite"
	Mongo  = "mongo"
	Redis  = "redis"
)

var ErrBackend = errors.New("unknown history backend")

// Store keeps finished games. Results are only ever appended.
type Store interface {
	Save(ctx context.Context, r chess.Result) error
	// History lists every result, newest first.
	History(ctx context.Context) ([]chess.Result, error)
	io.Closer
}

type Conf struct {
	Backend       string          `json:",default=sqlite,options=sqlite|mongo|redis"`
	Path          string          `json:",default=data/history.db"`
	Mongo         MongoConf       `json:",optional"`
	Redis         redis.RedisConf `json:",optional"`
	RedisKey      string          `json:",default=dab:history"`
	Limit         int             `json:",default=200"`
	FlushInterval time.Duration   `json:",default=1s"`
}

type MongoConf struct {
	Url          string `json:",optional"`
	DataBaseName string `json:",default=dots_and_boxes"`
	Collection   string `json:",default=game_results"`
}

func New(c Conf) (Store, error) {
	switch c.Backend {
	case SQLite, "":
		return NewSQLiteStore(c.Path)
	case Mongo:
		return NewMongoStore(c.Mongo), nil
	case Redis:
		rds, err := redis.NewRedis(c.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rds, c.RedisKey, c.Limit), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBackend, c.Backend)
}

func newestFirst(results []chess.Result) {
	slices.SortStableFunc(results, func(a, b chess.Result) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
}
