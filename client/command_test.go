package main

import (
	"testing"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	for input, want := range map[string]Command{
		"h 1 2":                  {Kind: CmdMove, Line: chess.H(1, 2)},
		"  V 0 3 ":               {Kind: CmdMove, Line: chess.V(0, 3)},
		"save":                   {Kind: CmdSave},
		"saves":                  {Kind: CmdSaves},
		"load game_17.dabgame":   {Kind: CmdLoad, Arg: "game_17.dabgame"},
		"delete game_17.dabgame": {Kind: CmdDelete, Arg: "game_17.dabgame"},
		"new":                    {Kind: CmdNew, Arg: ModeComputer},
		"new local":              {Kind: CmdNew, Arg: ModeLocal},
		"history":                {Kind: CmdHistory},
		"board":                  {Kind: CmdBoard},
		"help":                   {Kind: CmdHelp},
		"q":                      {Kind: CmdQuit},
	} {
		got, err := ParseCommand(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, input := range []string{"", "jump", "h 1", "h a 2", "v 1 b", "load", "new host"} {
		_, err := ParseCommand(input)
		assert.Error(t, err, input)
	}
	_, err := ParseCommand("jump")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
