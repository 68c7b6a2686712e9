package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/zeromicro/go-zero/core/logx"
	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS game_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	game TEXT NOT NULL DEFAULT '',
	player_one TEXT NOT NULL,
	player_two TEXT NOT NULL,
	winner TEXT,
	started_at INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	vs_computer INTEGER NOT NULL
);
`

// SQLiteStore keeps history in a database file on this device.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return nil, err
	}

	logx.Infof("history database at %s", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, r chess.Result) error {
	winner := sql.NullString{String: r.Winner, Valid: r.Winner != ""}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO game_results (game, player_one, player_two, winner, started_at, duration_ms, vs_computer)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		r.Game,
		r.PlayerOne,
		r.PlayerTwo,
		winner,
		r.StartedAt.UnixMilli(),
		r.Duration.Milliseconds(),
		r.VsComputer,
	)
	return err
}

func (s *SQLiteStore) History(ctx context.Context) (results []chess.Result, err error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT game, player_one, player_two, winner, started_at, duration_ms, vs_computer
	FROM game_results ORDER BY started_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r          chess.Result
			winner     sql.NullString
			startedAt  int64
			durationMs int64
		)
		if err = rows.Scan(&r.Game, &r.PlayerOne, &r.PlayerTwo, &winner, &startedAt, &durationMs, &r.VsComputer); err != nil {
			return nil, err
		}
		r.Winner = winner.String
		r.StartedAt = time.UnixMilli(startedAt)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
