package pusher

import (
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// Pusher buffers messages and hands them to PushLogic in batches, every
// PushInterval and once more on Stop. A failed batch stays buffered and is
// retried with the next one.
type Pusher[T any] struct {
	MessagesBuffer []T
	PushLogic      func(...T) error
	PushInterval   time.Duration
	ErrorHandler   func(error)

	lock      sync.Mutex
	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewPusher[T any](options ...Option[T]) (newPusher *Pusher[T]) {
	newPusher = &Pusher[T]{
		PushLogic:    func(...T) error { return nil },
		ErrorHandler: func(err error) { logx.Errorf("push messages: %v", err) },
		PushInterval: time.Second,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}

	for _, option := range options {
		option(newPusher)
	}

	return
}

func (p *Pusher[T]) PushAll() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.MessagesBuffer) == 0 {
		return nil
	}

	if err := p.PushLogic(p.MessagesBuffer...); err != nil {
		return err
	}

	p.MessagesBuffer = nil
	return nil
}

func (p *Pusher[T]) AddMessages(messages ...T) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.MessagesBuffer = append(p.MessagesBuffer, messages...)
}

// Pending returns how many messages wait for the next push.
func (p *Pusher[T]) Pending() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.MessagesBuffer)
}

func (p *Pusher[T]) Start() {
	p.startOnce.Do(func() {
		threading.GoSafe(p.run)
	})
}

func (p *Pusher[T]) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.PushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			if err := p.PushAll(); err != nil {
				p.ErrorHandler(err)
			}
		}
	}
}

// Stop ends the push loop and flushes what is left. It is safe to call more
// than once and on a pusher that was never started.
func (p *Pusher[T]) Stop() {
	p.stopOnce.Do(func() {
		p.startOnce.Do(func() { close(p.done) })
		close(p.stop)
		<-p.done

		if err := p.PushAll(); err != nil {
			p.ErrorHandler(err)
		}
	})
}
