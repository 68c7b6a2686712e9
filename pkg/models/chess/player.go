package chess

import "fmt"

type Kind int8

const (
	Human Kind = iota
	Computer
)

func (k Kind) String() string {
	switch k {
	case Human:
		return "HUMAN"
	case Computer:
		return "COMPUTER"
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "HUMAN":
		*k = Human
	case "COMPUTER":
		*k = Computer
	default:
		return fmt.Errorf("unknown player kind %q", text)
	}
	return nil
}

const (
	Player1 = 0
	Player2 = 1

	// HostSeat is the seat of the device that opened a peer game; it keeps
	// the score history for that game.
	HostSeat = Player1
	PeerSeat = Player2
)

type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

func (p Player) String() string {
	return fmt.Sprintf("%s(%d)", p.Name, p.ID)
}

func Other(id int) int { return 1 - id }

func LocalPlayers(vsComputer bool) [2]Player {
	if vsComputer {
		return [2]Player{
			{ID: Player1, Name: "You", Kind: Human},
			{ID: Player2, Name: "Computer", Kind: Computer},
		}
	}
	return [2]Player{
		{ID: Player1, Name: "Player 1", Kind: Human},
		{ID: Player2, Name: "Player 2", Kind: Human},
	}
}

func PeerPlayers(host bool) [2]Player {
	if host {
		return [2]Player{
			{ID: Player1, Name: "You (Host)", Kind: Human},
			{ID: Player2, Name: "Opponent (Client)", Kind: Human},
		}
	}
	return [2]Player{
		{ID: Player1, Name: "Opponent (Host)", Kind: Human},
		{ID: Player2, Name: "You (Client)", Kind: Human},
	}
}
