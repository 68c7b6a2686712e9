package history

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func result(game string, minutes int, winner string) chess.Result {
	return chess.Result{
		Game:       game,
		PlayerOne:  "You",
		PlayerTwo:  "Computer",
		Winner:     winner,
		StartedAt:  base.Add(time.Duration(minutes) * time.Minute),
		Duration:   90*time.Second + 250*time.Millisecond,
		VsComputer: true,
	}
}

func games(results []chess.Result) (ids []string) {
	for _, r := range results {
		ids = append(ids, r.Game)
	}
	return
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	defer s.Close()

	empty, err := s.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.Save(ctx, result("b", 5, "Computer")))
	require.NoError(t, s.Save(ctx, result("a", 0, chess.Tie)))
	require.NoError(t, s.Save(ctx, result("c", 9, "")))

	got, err := s.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, games(got))

	assert.Equal(t, "", got[0].Winner)
	assert.Equal(t, chess.Tie, got[2].Winner)
	assert.True(t, base.Add(9*time.Minute).Equal(got[0].StartedAt))
	assert.Equal(t, 90*time.Second+250*time.Millisecond, got[1].Duration)
	assert.True(t, got[1].VsComputer)
	assert.Equal(t, "Computer", got[1].PlayerTwo)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := New(Conf{Backend: SQLite, Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, result("a", 0, "You")))
	require.NoError(t, s.Close())

	s, err = New(Conf{Backend: SQLite, Path: path})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, games(got))
}

func TestUnknownBackend(t *testing.T) {
	_, err := New(Conf{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrBackend)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.New(mr.Addr()), "dab:history", 2)

	require.NoError(t, s.Save(ctx, result("a", 0, "You")))
	require.NoError(t, s.Save(ctx, result("c", 9, "")))
	require.NoError(t, s.Save(ctx, result("b", 5, chess.Tie)))

	got, err := s.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, games(got))
	assert.Equal(t, chess.Tie, got[1].Winner)
	assert.True(t, base.Add(5*time.Minute).Equal(got[1].StartedAt))

	_, err = mr.Lpush("dab:history", "not json")
	require.NoError(t, err)
	got, err = s.History(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMongoRecordConversion(t *testing.T) {
	r := result("a", 3, "You")
	rec := NewGameResult(r)
	assert.True(t, rec.ID.IsZero())
	assert.Equal(t, int64(90250), rec.DurationMs)
	assert.Equal(t, r, rec.Result())
}

type flakyStore struct {
	mu    sync.Mutex
	saved []chess.Result
	fails int
}

func (f *flakyStore) Save(_ context.Context, r chess.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fails > 0 {
		f.fails--
		return errors.New("database locked")
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *flakyStore) History(context.Context) ([]chess.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := append([]chess.Result(nil), f.saved...)
	newestFirst(out)
	return out, nil
}

func (f *flakyStore) Close() error { return nil }

func TestRecorderFlushesOnClose(t *testing.T) {
	store := &flakyStore{}
	r := NewRecorder(store, time.Hour)
	r.Record(result("a", 0, "You"))
	r.Record(result("b", 1, "Computer"))
	r.Close()

	got, err := store.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, games(got))
}

func TestRecorderRetriesWithoutDuplicates(t *testing.T) {
	store := &flakyStore{fails: 1}
	r := NewRecorder(store, 5*time.Millisecond)
	defer r.Close()

	r.Record(result("a", 0, "You"))
	r.Record(result("b", 1, "Computer"))

	require.Eventually(t, func() bool {
		got, _ := store.History(context.Background())
		return len(got) == 2
	}, time.Second, time.Millisecond)

	got, _ := store.History(context.Background())
	assert.Equal(t, []string{"b", "a"}, games(got))
}
