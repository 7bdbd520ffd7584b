// FILE: connect4/internal/server/processor/command.go
package processor

import (
	"connect4/internal/server/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdGetGame
	CmdMakeMove
	CmdCancelGame
	CmdListGames
	CmdGetBoard
	CmdGetHistory
)

// Command is a unified structure for all processor operations
type Command struct {
	Type     CommandType
	GameID   string // For game-specific commands
	Username string // For user-scoped commands
	Args     any    // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewMakeMoveCommand(gameID string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		GameID: gameID,
		Args:   req,
	}
}

func NewCancelGameCommand(gameID string) Command {
	return Command{
		Type:   CmdCancelGame,
		GameID: gameID,
	}
}

func NewListGamesCommand(username string, activeOnly bool) Command {
	return Command{
		Type:     CmdListGames,
		Username: username,
		Args:     activeOnly,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

func NewGetHistoryCommand(gameID string) Command {
	return Command{
		Type:   CmdGetHistory,
		GameID: gameID,
	}
}
