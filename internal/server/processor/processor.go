// FILE: connect4/internal/server/processor/processor.go
package processor

import (
	"errors"

	"connect4/internal/server/core"
	"connect4/internal/server/game"
	"connect4/internal/server/opponent"
	"connect4/internal/server/service"
)

// Processor translates commands into service calls and service errors into
// API error codes
type Processor struct {
	svc *service.Service
}

// New creates a processor backed by the given service
func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdCancelGame:
		return p.handleCancelGame(cmd)
	case CmdListGames:
		return p.handleListGames(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetHistory:
		return p.handleGetHistory(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// handleCreateGame starts a new game for the requesting player
func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	view, err := p.svc.CreateGame(args.Username, args.Rows, args.Columns)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(view),
	}
}

// handleGetGame retrieves current game state
func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	view, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(view),
	}
}

// handleMakeMove plays one full exchange: the player's drop and, if the game
// stays open, the computer's reply
func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok || args.Column == nil {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	view, err := p.svc.ApplyMove(cmd.GameID, *args.Column)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(view),
	}
}

// handleCancelGame abandons an open game
func (p *Processor) handleCancelGame(cmd Command) ProcessorResponse {
	view, err := p.svc.Cancel(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(view),
	}
}

// handleListGames returns a player's games, optionally only open ones
func (p *Processor) handleListGames(cmd Command) ProcessorResponse {
	activeOnly, _ := cmd.Args.(bool)

	views, err := p.svc.ListGames(cmd.Username, activeOnly)
	if err != nil {
		return p.serviceError(err)
	}

	response := core.GameListResponse{Games: make([]core.GameResponse, 0, len(views))}
	for _, view := range views {
		response.Games = append(response.Games, buildGameResponse(view))
	}

	return ProcessorResponse{
		Success: true,
		Data:    response,
	}
}

// handleGetBoard returns the ASCII board visualization
func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	ascii, err := p.svc.GameBoard(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			GameID: cmd.GameID,
			Board:  ascii,
		},
	}
}

// handleGetHistory returns the game's audit trail
func (p *Processor) handleGetHistory(cmd Command) ProcessorResponse {
	records, err := p.svc.GameHistory(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}

	response := core.HistoryResponse{
		GameID:  cmd.GameID,
		Entries: make([]core.HistoryEntryResponse, 0, len(records)),
	}
	for _, rec := range records {
		response.Entries = append(response.Entries, core.HistoryEntryResponse{
			Column:    rec.MoveColumn,
			Row:       rec.MoveRow,
			Message:   rec.Message,
			CreatedAt: rec.CreatedAt,
		})
	}

	return ProcessorResponse{
		Success: true,
		Data:    response,
	}
}

// buildGameResponse constructs the standard game response
func buildGameResponse(view *service.GameView) core.GameResponse {
	g := view.Game
	return core.GameResponse{
		GameID:   g.GameID,
		Username: view.Username,
		Rows:     g.Rows,
		Columns:  g.Columns,
		Moves:    g.Moves,
		Status:   g.Status.String(),
		Message:  view.Message,
	}
}

// serviceError maps service-level errors to API error codes
func (p *Processor) serviceError(err error) ProcessorResponse {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return p.errorResponse("user not found", core.ErrUserNotFound)
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrGameNotFound)
	case errors.Is(err, service.ErrGameCanceled):
		return p.errorResponse("game already canceled", core.ErrGameCanceled)
	case errors.Is(err, service.ErrGameOver):
		return p.errorResponse("game already over", core.ErrGameOver)
	case errors.Is(err, game.ErrInvalidColumn):
		return p.errorResponse("column outside board boundaries", core.ErrInvalidColumn)
	case errors.Is(err, game.ErrColumnFull):
		return p.errorResponse("column is filled", core.ErrColumnFull)
	case errors.Is(err, opponent.ErrNoLegalMove):
		return p.errorResponse("no legal move available", core.ErrNoLegalMove)
	default:
		return p.errorResponse(err.Error(), core.ErrInternalError)
	}
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
