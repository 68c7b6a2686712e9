package peer

import "fmt"

type Status int32

const (
	Idle Status = iota
	Waiting
	Connecting
	Connected
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Waiting:
		return "WAITING"
	case Connecting:
		return "CONNECTING"
	case Connected:
		return "CONNECTED"
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}
