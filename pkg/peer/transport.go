package peer

import (
	"bufio"
	"errors"
	"fmt"
	"net"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/gorilla/websocket"
)

var ErrChannel = errors.New("peer channel closed")

// Transport moves whole records between the two devices. ReadRecord and
// WriteRecord may be used from one goroutine each; Close unblocks both.
type Transport interface {
	ReadRecord() ([]byte, error)
	WriteRecord(record []byte) error
	Close() error
}

type streamTransport struct {
	conn net.Conn
	r    *bufio.Reader
}

// NewStream frames records on a byte stream by the line delimiter.
func NewStream(conn net.Conn) Transport {
	return &streamTransport{conn: conn, r: bufio.NewReader(conn)}
}

func (t *streamTransport) ReadRecord() ([]byte, error) {
	record, err := t.r.ReadBytes(message.Delimiter)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (t *streamTransport) WriteRecord(record []byte) error {
	_, err := t.conn.Write(record)
	return err
}

func (t *streamTransport) Close() error {
	return t.conn.Close()
}

type webSocketTransport struct {
	conn *websocket.Conn
}

// NewWebSocket sends one record per text frame.
func NewWebSocket(conn *websocket.Conn) Transport {
	return &webSocketTransport{conn: conn}
}

func (t *webSocketTransport) ReadRecord() ([]byte, error) {
	for {
		messageType, data, err := t.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if messageType == websocket.TextMessage {
			return data, nil
		}
	}
}

func (t *webSocketTransport) WriteRecord(record []byte) error {
	return t.conn.WriteMessage(websocket.TextMessage, record)
}

func (t *webSocketTransport) Close() error {
	return t.conn.Close()
}

func channelError(err error) error {
	if errors.Is(err, ErrChannel) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrChannel, err)
}
