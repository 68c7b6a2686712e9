package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
)

type CommandKind int8

const (
	CmdMove CommandKind = iota
	CmdSave
	CmdSaves
	CmdLoad
	CmdDelete
	CmdNew
	CmdHistory
	CmdBoard
	CmdHelp
	CmdQuit
)

type Command struct {
	Kind CommandKind
	Line chess.Line
	Arg  string
}

var ErrUnknownCommand = errors.New("unknown command, type help")

const helpText = `h <row> <col>   place the horizontal line right of dot (row, col)
v <row> <col>   place the vertical line below dot (row, col)
save            save this game
saves           list saved games
load <id>       resume a saved game
delete <id>     delete a saved game
new [local|computer]
                start a fresh game
history         show finished games
board           print the board again
quit            leave`

func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}

	switch fields[0] {
	case "h", "v":
		if len(fields) != 3 {
			return Command{}, fmt.Errorf("usage: %s <row> <col>", fields[0])
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, fmt.Errorf("bad row %q", fields[1])
		}
		col, err := strconv.Atoi(fields[2])
		if err != nil {
			return Command{}, fmt.Errorf("bad col %q", fields[2])
		}
		if fields[0] == "h" {
			return Command{Kind: CmdMove, Line: chess.H(row, col)}, nil
		}
		return Command{Kind: CmdMove, Line: chess.V(row, col)}, nil
	case "save":
		return Command{Kind: CmdSave}, nil
	case "saves":
		return Command{Kind: CmdSaves}, nil
	case "load", "delete":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: %s <id>", fields[0])
		}
		kind := CmdLoad
		if fields[0] == "delete" {
			kind = CmdDelete
		}
		return Command{Kind: kind, Arg: fields[1]}, nil
	case "new":
		arg := ModeComputer
		if len(fields) > 1 {
			arg = fields[1]
		}
		if arg != ModeLocal && arg != ModeComputer {
			return Command{}, fmt.Errorf("new game mode must be %s or %s", ModeLocal, ModeComputer)
		}
		return Command{Kind: CmdNew, Arg: arg}, nil
	case "history":
		return Command{Kind: CmdHistory}, nil
	case "board":
		return Command{Kind: CmdBoard}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}, nil
	}
	return Command{}, ErrUnknownCommand
}
