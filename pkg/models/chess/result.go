package chess

import "time"

// Result is the history row written once per finished game.
type Result struct {
	Game       string        `json:"game,omitempty"`
	PlayerOne  string        `json:"playerOne"`
	PlayerTwo  string        `json:"playerTwo"`
	Winner     string        `json:"winner,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	Duration   time.Duration `json:"duration"`
	VsComputer bool          `json:"vsComputer"`
}

func (s State) Result(startedAt, endedAt time.Time) Result {
	return Result{
		PlayerOne:  s.Players[Player1].Name,
		PlayerTwo:  s.Players[Player2].Name,
		Winner:     s.Winner,
		StartedAt:  startedAt,
		Duration:   endedAt.Sub(startedAt),
		VsComputer: s.VsComputer,
	}
}
