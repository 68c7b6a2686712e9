package message

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameUid names one session. It is logged with every session message and
// stored with the result of the game.
type GameUid string

func NewGameUid() GameUid {
	return GameUid(uuid.NewString())
}

func ParseGameUid(s string) (GameUid, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: game uid %q: %v", ErrDecode, s, err)
	}
	return GameUid(id.String()), nil
}

func (g GameUid) Valid() bool {
	_, err := uuid.Parse(string(g))
	return err == nil
}

// Short is the first block of the uid, enough to tell games apart on screen.
func (g GameUid) Short() string {
	if len(g) < 8 {
		return string(g)
	}
	return string(g[:8])
}

const TimeStampLayout = "2006-01-02 15:04"

// TimeStamp is a local wall clock time as shown next to saves and results.
type TimeStamp string

func NewTimeStamp(t time.Time) TimeStamp {
	if t.IsZero() {
		return "-"
	}
	return TimeStamp(t.In(time.Local).Format(TimeStampLayout))
}

func (ts TimeStamp) String() string { return string(ts) }
