package saves

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/bytedance/sonic"
	"github.com/zeromicro/go-zero/core/logx"
)

const FileExtension = ".dabgame"

var (
	ErrNotFound = errors.New("saved game not found")
	ErrPeerGame = errors.New("peer games cannot be saved")
	ErrCorrupt  = errors.New("saved game is corrupt")

	fileNamePattern = regexp.MustCompile(`^game_[0-9]+\` + FileExtension + `$`)
)

// Store keeps one file per saved game in a directory.
type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func FileName(millis int64) string {
	return fmt.Sprintf("game_%d%s", millis, FileExtension)
}

// Save writes s and returns the id to load it by. startedAt is kept so the
// resumed game reports its full duration.
func (st *Store) Save(s chess.State, startedAt time.Time) (string, error) {
	if s.Peer {
		return "", ErrPeerGame
	}

	ts := st.now().UnixMilli()
	for {
		name := FileName(ts)
		f, err := os.OpenFile(filepath.Join(st.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			ts++
			continue
		}
		if err != nil {
			return "", err
		}

		data, err := sonic.ConfigStd.MarshalIndent(savedFile{
			FileName:  name,
			Game:      newSavedGame(s),
			Timestamp: ts,
			StartTime: startedAt.UnixMilli(),
		}, "", "  ")
		if err == nil {
			_, err = f.Write(data)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(f.Name())
			return "", err
		}

		logx.Infof("game saved in %s", name)
		return name, nil
	}
}

func (st *Store) path(id string) (string, error) {
	if !fileNamePattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return filepath.Join(st.dir, id), nil
}

func (st *Store) Load(id string) (*Saved, error) {
	path, err := st.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var f savedFile
	if err = sonic.ConfigStd.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	state, err := f.Game.state()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}

	return &Saved{
		ID:        id,
		State:     state,
		SavedAt:   time.UnixMilli(f.Timestamp),
		StartedAt: time.UnixMilli(f.StartTime),
	}, nil
}

// List returns every readable save, newest first. Unreadable files are
// logged and skipped.
func (st *Store) List() ([]*Saved, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, err
	}

	var list []*Saved
	for _, e := range entries {
		if e.IsDir() || !fileNamePattern.MatchString(e.Name()) {
			continue
		}
		saved, err := st.Load(e.Name())
		if err != nil {
			logx.Errorf("skip saved game: %v", err)
			continue
		}
		list = append(list, saved)
	}

	slices.SortStableFunc(list, func(a, b *Saved) int {
		return b.SavedAt.Compare(a.SavedAt)
	})
	return list, nil
}

func (st *Store) Delete(id string) error {
	path, err := st.path(id)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err == nil {
		logx.Infof("saved game %s deleted", id)
	}
	return err
}
