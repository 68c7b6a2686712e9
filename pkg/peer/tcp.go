package peer

import (
	"context"
	"net"

	"github.com/zeromicro/go-zero/core/logx"
)

// Listener waits for the single device that joins a hosted game.
type Listener struct {
	ln   net.Listener
	opts options
}

func Listen(ctx context.Context, addr string, opts ...Option) (*Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, channelError(err)
	}
	return &Listener{ln: ln, opts: newOptions(opts)}, nil
}

func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Accept takes the first connection and stops listening.
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	defer l.ln.Close()

	l.opts.onStatus(Waiting)
	stop := context.AfterFunc(ctx, func() { _ = l.ln.Close() })
	defer stop()

	conn, err := l.ln.Accept()
	if err != nil {
		l.opts.onStatus(Idle)
		return nil, channelError(err)
	}

	logx.Infof("peer %s joined", conn.RemoteAddr())
	return newConn(NewStream(conn), l.opts), nil
}

func (l *Listener) Close() error {
	return l.ln.Close()
}

// Host listens on addr and blocks until one peer joins.
func Host(ctx context.Context, addr string, opts ...Option) (*Conn, error) {
	l, err := Listen(ctx, addr, opts...)
	if err != nil {
		return nil, err
	}
	logx.Infof("hosting on %s", l.Addr())
	return l.Accept(ctx)
}

func Join(ctx context.Context, addr string, opts ...Option) (*Conn, error) {
	o := newOptions(opts)
	o.onStatus(Connecting)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		o.onStatus(Idle)
		return nil, channelError(err)
	}

	logx.Infof("joined host %s", conn.RemoteAddr())
	return newConn(NewStream(conn), o), nil
}
