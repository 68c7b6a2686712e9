package types

import (
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
)

type HistoryResponse struct {
	Results []chess.Result `json:"results"`
}

type SaveSummary struct {
	ID         string    `json:"id"`
	SavedAt    time.Time `json:"savedAt"`
	StartedAt  time.Time `json:"startedAt"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Players    [2]string `json:"players"`
	Scores     [2]int    `json:"scores"`
	Current    string    `json:"currentPlayer"`
	Over       bool      `json:"isGameOver"`
	Winner     string    `json:"winner,omitempty"`
	VsComputer bool      `json:"isVsComputer"`
}

type SavesResponse struct {
	Saves []SaveSummary `json:"saves"`
}

type SaveDetail struct {
	SaveSummary
	Moves []message.LineMessage `json:"moves"`
	Board string                `json:"board"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
