package peer

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// WebSocketAcceptor is an http.Handler that upgrades the first request into
// the peer link and turns away the rest.
type WebSocketAcceptor struct {
	upgrader websocket.Upgrader
	accepted chan *websocket.Conn
	opts     options
}

func NewWebSocketAcceptor(opts ...Option) *WebSocketAcceptor {
	return &WebSocketAcceptor{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		accepted: make(chan *websocket.Conn, 1),
		opts:     newOptions(opts),
	}
}

func (a *WebSocketAcceptor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Errorf("upgrade %s: %v", r.RemoteAddr, err)
		return
	}

	select {
	case a.accepted <- ws:
	default:
		logx.Infof("turned away %s, game already has a peer", r.RemoteAddr)
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "game is full"))
		_ = ws.Close()
	}
}

func (a *WebSocketAcceptor) Accept(ctx context.Context) (*Conn, error) {
	a.opts.onStatus(Waiting)

	select {
	case <-ctx.Done():
		a.opts.onStatus(Idle)
		return nil, channelError(ctx.Err())
	case ws := <-a.accepted:
		logx.Infof("peer %s joined", ws.RemoteAddr())
		return newConn(NewWebSocket(ws), a.opts), nil
	}
}

// HostWebSocket serves the acceptor on addr until one peer joins.
func HostWebSocket(ctx context.Context, addr string, opts ...Option) (*Conn, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, channelError(err)
	}

	acceptor := NewWebSocketAcceptor(opts...)
	server := &http.Server{Handler: acceptor}
	threading.GoSafe(func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Errorf("websocket host: %v", err)
		}
	})
	defer server.Close()

	logx.Infof("hosting websocket on %s", ln.Addr())
	return acceptor.Accept(ctx)
}

// JoinWebSocket dials a ws:// url.
func JoinWebSocket(ctx context.Context, url string, opts ...Option) (*Conn, error) {
	o := newOptions(opts)
	o.onStatus(Connecting)

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		o.onStatus(Idle)
		return nil, channelError(err)
	}

	logx.Infof("joined websocket host %s", url)
	return newConn(NewWebSocket(ws), o), nil
}
