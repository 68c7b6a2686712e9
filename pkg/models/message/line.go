package message

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/bytedance/sonic"
)

// Delimiter ends every line record on the peer stream.
const Delimiter = '\n'

var ErrDecode = errors.New("malformed message")

// LineMessage is the wire shape of a placed line:
// {"row":0,"col":1,"orientation":"HORIZONTAL"}.
type LineMessage struct {
	Row         *int    `json:"row"`
	Col         *int    `json:"col"`
	Orientation *string `json:"orientation"`
}

func NewLineMessage(l chess.Line) LineMessage {
	row, col, o := l.Row, l.Col, l.Orientation.String()
	return LineMessage{Row: &row, Col: &col, Orientation: &o}
}

func (m LineMessage) Line() (l chess.Line, err error) {
	if m.Row == nil || m.Col == nil || m.Orientation == nil {
		return l, fmt.Errorf("%w: missing field", ErrDecode)
	}
	if err = l.Orientation.UnmarshalText([]byte(*m.Orientation)); err != nil {
		return l, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	l.Row, l.Col = *m.Row, *m.Col
	return l, nil
}

func (m LineMessage) String() string {
	str, _ := sonic.MarshalString(m)
	return str
}

// EncodeLine returns the record for l including the trailing delimiter.
func EncodeLine(l chess.Line) ([]byte, error) {
	b, err := sonic.Marshal(NewLineMessage(l))
	if err != nil {
		return nil, err
	}
	return append(b, Delimiter), nil
}

// DecodeLine parses one record; surrounding whitespace and the delimiter
// are ignored.
func DecodeLine(record []byte) (chess.Line, error) {
	record = bytes.TrimSpace(record)
	if len(record) == 0 {
		return chess.Line{}, fmt.Errorf("%w: empty record", ErrDecode)
	}

	var m LineMessage
	if err := sonic.Unmarshal(record, &m); err != nil {
		return chess.Line{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return m.Line()
}
