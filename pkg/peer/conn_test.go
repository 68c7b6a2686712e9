package peer

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statuses struct {
	mu   sync.Mutex
	seen []Status
}

func (s *statuses) record(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen = append(s.seen, st)
}

func (s *statuses) list() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Status(nil), s.seen...)
}

func collect(ctx context.Context, c *Conn) (<-chan chess.Line, <-chan error) {
	lines, done := make(chan chess.Line, 16), make(chan error, 1)
	go func() {
		done <- c.Run(ctx, func(l chess.Line) error {
			lines <- l
			return nil
		})
	}()
	return lines, done
}

func receive(t *testing.T, lines <-chan chess.Line) chess.Line {
	t.Helper()
	select {
	case l := <-lines:
		return l
	case <-time.After(time.Second):
		t.Fatal("no line received")
	}
	return chess.Line{}
}

func TestStreamExchange(t *testing.T) {
	p1, p2 := net.Pipe()
	a, b := NewConn(NewStream(p1)), NewConn(NewStream(p2))
	defer a.Close()
	defer b.Close()

	ctx := context.Background()
	fromA, _ := collect(ctx, b)
	fromB, _ := collect(ctx, a)

	require.NoError(t, a.Send(chess.H(1, 2)))
	require.NoError(t, a.Send(chess.V(0, 3)))
	assert.Equal(t, chess.H(1, 2), receive(t, fromA))
	assert.Equal(t, chess.V(0, 3), receive(t, fromA))

	require.NoError(t, b.Send(chess.V(2, 2)))
	assert.Equal(t, chess.V(2, 2), receive(t, fromB))
}

func TestAcceptedSendsSurviveClose(t *testing.T) {
	for range 20 {
		p1, p2 := net.Pipe()
		a := NewConn(NewStream(p1))

		got := make(chan int, 1)
		go func() {
			reader := NewStream(p2)
			n := 0
			for {
				if _, err := reader.ReadRecord(); err != nil {
					got <- n
					return
				}
				n++
			}
		}()

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
		)
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := range 6 {
					if a.Send(chess.H(i, j)) == nil {
						mu.Lock()
						accepted++
						mu.Unlock()
					}
				}
			}()
		}
		require.NoError(t, a.Close())
		wg.Wait()

		assert.Equal(t, accepted, <-got)
		assert.ErrorIs(t, a.Send(chess.V(0, 0)), ErrChannel)
		_ = p2.Close()
	}
}

func TestMalformedRecordIsDropped(t *testing.T) {
	p1, p2 := net.Pipe()
	defer p1.Close()
	b := NewConn(NewStream(p2))
	defer b.Close()

	lines, _ := collect(context.Background(), b)
	go func() {
		_, _ = p1.Write([]byte("garbage\n"))
		_, _ = p1.Write([]byte(`{"row":0,"col":0,"orientation":"SIDEWAYS"}` + "\n"))
		_, _ = p1.Write([]byte(`{"row":0,"col":1,"orientation":"VERTICAL"}` + "\n"))
	}()

	assert.Equal(t, chess.V(0, 1), receive(t, lines))
}

func TestDisconnect(t *testing.T) {
	p1, p2 := net.Pipe()
	seen := &statuses{}
	dropped := make(chan error, 2)
	b := NewConn(NewStream(p2), WithStatusHandler(seen.record), WithDisconnectHandler(func(err error) {
		dropped <- err
	}))

	_, done := collect(context.Background(), b)
	require.NoError(t, p1.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrChannel)
	case <-time.After(time.Second):
		t.Fatal("receive loop did not end")
	}
	assert.ErrorIs(t, <-dropped, ErrChannel)
	assert.Empty(t, dropped)

	assert.Equal(t, Idle, b.Status())
	assert.Equal(t, []Status{Connected, Idle}, seen.list())
	assert.ErrorIs(t, b.Send(chess.H(0, 0)), ErrChannel)
}

func TestCancelEndsLoop(t *testing.T) {
	p1, p2 := net.Pipe()
	defer p1.Close()
	b := NewConn(NewStream(p2))

	ctx, cancel := context.WithCancel(context.Background())
	_, done := collect(ctx, b)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrChannel)
	case <-time.After(time.Second):
		t.Fatal("receive loop did not end")
	}
}

func TestHostAndJoin(t *testing.T) {
	ctx := context.Background()
	hostSeen, joinSeen := &statuses{}, &statuses{}

	l, err := Listen(ctx, "127.0.0.1:0", WithStatusHandler(hostSeen.record))
	require.NoError(t, err)

	accepted := make(chan *Conn, 1)
	go func() {
		c, err := l.Accept(ctx)
		assert.NoError(t, err)
		accepted <- c
	}()

	client, err := Join(ctx, l.Addr().String(), WithStatusHandler(joinSeen.record))
	require.NoError(t, err)
	defer client.Close()
	host := <-accepted
	require.NotNil(t, host)
	defer host.Close()

	lines, _ := collect(ctx, client)
	require.NoError(t, host.Send(chess.H(0, 0)))
	assert.Equal(t, chess.H(0, 0), receive(t, lines))

	assert.Equal(t, []Status{Waiting, Connected}, hostSeen.list())
	assert.Equal(t, []Status{Connecting, Connected}, joinSeen.list())
}

func TestJoinRefused(t *testing.T) {
	l, err := Listen(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	seen := &statuses{}
	_, err = Join(context.Background(), addr, WithStatusHandler(seen.record))
	assert.ErrorIs(t, err, ErrChannel)
	assert.Equal(t, []Status{Connecting, Idle}, seen.list())
}

func TestWebSocketExchange(t *testing.T) {
	ctx := context.Background()
	acceptor := NewWebSocketAcceptor()
	srv := httptest.NewServer(acceptor)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	client, err := JoinWebSocket(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	host, err := acceptor.Accept(ctxTimeout)
	require.NoError(t, err)
	defer host.Close()

	fromHost, _ := collect(ctx, client)
	fromClient, _ := collect(ctx, host)

	require.NoError(t, host.Send(chess.H(3, 1)))
	assert.Equal(t, chess.H(3, 1), receive(t, fromHost))
	require.NoError(t, client.Send(chess.V(1, 1)))
	assert.Equal(t, chess.V(1, 1), receive(t, fromClient))
}

func TestWebSocketAcceptTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewWebSocketAcceptor().Accept(ctx)
	assert.ErrorIs(t, err, ErrChannel)
}

func TestSessionsOverTheWire(t *testing.T) {
	grid := chess.Grid{Rows: 3, Cols: 3}
	p1, p2 := net.Pipe()
	hostConn, clientConn := NewConn(NewStream(p1)), NewConn(NewStream(p2))

	host := session.New(chess.NewPeerGame(grid, true), session.WithSender(hostConn))
	client := session.New(chess.NewPeerGame(grid, false), session.WithSender(clientConn))
	defer host.Close()
	defer client.Close()

	ctx := context.Background()
	go func() { _ = hostConn.Run(ctx, host.SubmitRemote) }()
	go func() { _ = clientConn.Run(ctx, client.SubmitRemote) }()

	require.NoError(t, host.SubmitLocal(chess.H(0, 0)))
	require.Eventually(t, func() bool { return client.Snapshot().StepCount() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, client.SubmitLocal(chess.H(1, 0)))
	require.Eventually(t, func() bool { return host.Snapshot().StepCount() == 2 }, time.Second, time.Millisecond)

	h, c := host.Snapshot(), client.Snapshot()
	assert.Equal(t, h.Lines, c.Lines)
	assert.Equal(t, h.LineOwners, c.LineOwners)
	assert.Equal(t, h.Current, c.Current)

	require.NoError(t, hostConn.Close())
	require.NoError(t, clientConn.Close())
}
