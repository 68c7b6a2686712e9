package model

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	lockRetryInterval = time.Second / 5
	lockRetries       = 25
)

var ErrLockBusy = errors.New("redis lock busy")

type RedisLock struct {
	*redis.RedisLock
}

func NewLock(rds *redis.Redis, LockName string) *RedisLock {
	return &RedisLock{
		RedisLock: redis.NewRedisLock(rds, LockName),
	}
}

// Do runs f while holding the lock. The lock is released even when f fails.
func (l *RedisLock) Do(ctx context.Context, f func() error) error {
	if err := l.Lock(ctx); err != nil {
		return err
	}

	err := f()
	if uerr := l.UnLock(ctx); err == nil {
		err = uerr
	}
	return err
}

func (l *RedisLock) Lock(ctx context.Context) error {
	for range lockRetries {
		acquire, err := l.AcquireCtx(ctx)
		if err != nil {
			return err
		}
		if acquire {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}

	return ErrLockBusy
}

func (l *RedisLock) UnLock(ctx context.Context) error {
	_, err := l.ReleaseCtx(ctx)
	return err
}
