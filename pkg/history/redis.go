package history

import (
	"context"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/model"
	"github.com/bytedance/sonic"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// RedisStore keeps the most recent results in a capped redis list.
type RedisStore struct {
	rds   *redis.Redis
	key   string
	limit int
	lock  *model.RedisLock
}

func NewRedisStore(rds *redis.Redis, key string, limit int) *RedisStore {
	return &RedisStore{
		rds:   rds,
		key:   key,
		limit: limit,
		lock:  model.NewLock(rds, key+":lock"),
	}
}

func (s *RedisStore) Save(ctx context.Context, r chess.Result) error {
	value, err := sonic.MarshalString(r)
	if err != nil {
		return err
	}

	return s.lock.Do(ctx, func() error {
		if _, err := s.rds.LpushCtx(ctx, s.key, value); err != nil {
			return err
		}
		if s.limit > 0 {
			return s.rds.LtrimCtx(ctx, s.key, 0, int64(s.limit-1))
		}
		return nil
	})
}

func (s *RedisStore) History(ctx context.Context) ([]chess.Result, error) {
	values, err := s.rds.LrangeCtx(ctx, s.key, 0, -1)
	if err != nil {
		return nil, err
	}

	results := make([]chess.Result, 0, len(values))
	for _, v := range values {
		var r chess.Result
		if err := sonic.UnmarshalString(v, &r); err != nil {
			logx.Errorf("skip history entry %q: %v", v, err)
			continue
		}
		results = append(results, r)
	}
	newestFirst(results)
	return results, nil
}

func (s *RedisStore) Close() error {
	return nil
}
