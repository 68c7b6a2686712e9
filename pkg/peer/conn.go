package peer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

const (
	sendQueueSize = 64
	flushTimeout  = time.Second
)

type Option func(*options)

type options struct {
	onStatus     func(Status)
	onDisconnect func(error)
}

// WithStatusHandler is told about every connection status change.
func WithStatusHandler(f func(Status)) Option {
	return func(o *options) {
		o.onStatus = f
	}
}

// WithDisconnectHandler is called once when the receive loop ends.
func WithDisconnectHandler(f func(error)) Option {
	return func(o *options) {
		o.onDisconnect = f
	}
}

func newOptions(opts []Option) options {
	o := options{
		onStatus:     func(Status) {},
		onDisconnect: func(error) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Conn is one live link to the other device. Lines go out through a writer
// goroutine and come in through Run.
type Conn struct {
	logx.Logger
	options

	transport Transport
	status    atomic.Int32
	send      chan chess.Line
	sendMu    sync.Mutex
	closed    bool
	done      chan struct{}
	flushed   chan struct{}
	closeOnce sync.Once
	dropOnce  sync.Once
}

func NewConn(t Transport, opts ...Option) *Conn {
	return newConn(t, newOptions(opts))
}

func newConn(t Transport, o options) *Conn {
	c := &Conn{
		Logger:    logx.WithContext(context.Background()),
		options:   o,
		transport: t,
		send:      make(chan chess.Line, sendQueueSize),
		done:      make(chan struct{}),
		flushed:   make(chan struct{}),
	}
	c.setStatus(Connected)
	threading.GoSafe(c.writeLoop)
	return c
}

func (c *Conn) Status() Status {
	return Status(c.status.Load())
}

func (c *Conn) setStatus(s Status) {
	if Status(c.status.Swap(int32(s))) != s {
		c.onStatus(s)
	}
}

// Send queues l for the peer without waiting on the network. A nil error
// means l is flushed to the transport even if the Conn closes right after.
func (c *Conn) Send(l chess.Line) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return ErrChannel
	}

	select {
	case c.send <- l:
		return nil
	default:
		return fmt.Errorf("%w: send queue full", ErrChannel)
	}
}

// writeLoop sends queued lines until the Conn closes, then flushes what is
// left in the queue.
func (c *Conn) writeLoop() {
	defer close(c.flushed)

	for {
		select {
		case l := <-c.send:
			if !c.write(l) {
				return
			}
		case <-c.done:
			for {
				select {
				case l := <-c.send:
					if !c.write(l) {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (c *Conn) write(l chess.Line) bool {
	record, err := message.EncodeLine(l)
	if err != nil {
		c.Errorf("encode %s: %v", l, err)
		return true
	}

	if err = c.transport.WriteRecord(record); err != nil {
		c.Errorf("write %s: %v", l, err)
		threading.GoSafe(func() { _ = c.Close() })
		return false
	}
	return true
}

// Run reads lines from the peer and hands each to handle until the channel
// fails, ctx ends or the Conn is closed. Malformed records are dropped.
// Errors from handle are logged and do not stop the loop.
func (c *Conn) Run(ctx context.Context, handle func(chess.Line) error) error {
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	for {
		record, err := c.transport.ReadRecord()
		if err != nil {
			_ = c.Close()
			err = channelError(err)
			c.dropOnce.Do(func() { c.onDisconnect(err) })
			return err
		}

		l, err := message.DecodeLine(record)
		if err != nil {
			c.Errorf("drop record %q: %v", record, err)
			continue
		}

		if err = handle(l); err != nil {
			c.Infof("remote line %s not applied: %v", l, err)
		}
	}
}

func (c *Conn) Close() (err error) {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.closed = true
		c.sendMu.Unlock()

		close(c.done)
		select {
		case <-c.flushed:
		case <-time.After(flushTimeout):
		}
		err = c.transport.Close()
		c.setStatus(Idle)
	})
	return
}
