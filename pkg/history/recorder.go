package history

import (
	"context"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/pusher"
	"github.com/zeromicro/go-zero/core/logx"
)

const saveTimeout = 5 * time.Second

// Recorder writes results to a Store in the background so a finished game
// never waits on the database.
type Recorder struct {
	store  Store
	pusher *pusher.Pusher[chess.Result]
}

func NewRecorder(store Store, interval time.Duration) *Recorder {
	r := &Recorder{store: store}
	r.pusher = pusher.NewPusher(
		pusher.WithPushLogic(r.push),
		pusher.WithPushInterval[chess.Result](interval),
	)
	r.pusher.Start()
	return r
}

// push saves results oldest first; results already written are dropped from
// the batch on failure so a retry does not duplicate them.
func (r *Recorder) push(results ...chess.Result) error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	for i, res := range results {
		if err := r.store.Save(ctx, res); err != nil {
			r.pusher.MessagesBuffer = results[i:]
			return err
		}
		logx.Infof("recorded game %s: %s vs %s, winner %q", res.Game, res.PlayerOne, res.PlayerTwo, res.Winner)
	}
	return nil
}

func (r *Recorder) Record(res chess.Result) {
	r.pusher.AddMessages(res)
}

// Close flushes pending results.
func (r *Recorder) Close() {
	r.pusher.Stop()
}
