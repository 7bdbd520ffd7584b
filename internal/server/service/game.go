// FILE: connect4/internal/server/service/game.go
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"connect4/internal/server/board"
	"connect4/internal/server/core"
	"connect4/internal/server/game"
	"connect4/internal/server/opponent"
	"connect4/internal/server/storage"
)

// Player-facing messages, kept stable because clients display them verbatim.
const (
	MsgGameCreated  = "Good luck playing Connect4!"
	MsgYourTurn     = "Time to make a move!"
	MsgWin          = "You win!"
	MsgLoss         = "Game Over! You lost!"
	MsgDrawPlayer   = "Game over! No one wins! Player was last!"
	MsgDrawComputer = "Game over! No one wins! Computer was last!"
	MsgContinue     = "Nice try! Go on!"
	MsgCanceled     = "Game canceled!"
	MsgDraw         = "Game over! No one wins!"
)

// GameView pairs a game with its owner's username and the message the API
// returns for the operation that produced it.
type GameView struct {
	Game     *game.Game
	Username string
	Message  string
}

func gameFromRecord(rec *storage.GameRecord) *game.Game {
	return &game.Game{
		GameID:     rec.GameID,
		UserID:     rec.UserID,
		Rows:       rec.Rows,
		Columns:    rec.Columns,
		Moves:      rec.Moves,
		Status:     core.ParseStatus(rec.Status),
		CreatedAt:  rec.CreatedAt,
		FinishedAt: rec.FinishedAt,
	}
}

func recordFromGame(g *game.Game) storage.GameRecord {
	return storage.GameRecord{
		GameID:     g.GameID,
		UserID:     g.UserID,
		Rows:       g.Rows,
		Columns:    g.Columns,
		Moves:      g.Moves,
		Status:     g.Status.String(),
		CreatedAt:  g.CreatedAt,
		FinishedAt: g.FinishedAt,
	}
}

// statusMessage is the message for reads of a game in a settled state.
func statusMessage(status core.Status) string {
	switch status {
	case core.StatusWon:
		return MsgWin
	case core.StatusLost:
		return MsgLoss
	case core.StatusDrawn:
		return MsgDraw
	case core.StatusCanceled:
		return MsgCanceled
	default:
		return MsgYourTurn
	}
}

// CreateGame starts a new game for the named player. Dimensions outside the
// supported range fall back to the classic 6x7 grid.
func (s *Service) CreateGame(username string, rows, columns int) (*GameView, error) {
	user, err := s.GetUserByName(username)
	if err != nil {
		return nil, err
	}

	g := game.New(uuid.New().String(), user.UserID, rows, columns)
	if err := s.store.CreateGame(recordFromGame(g)); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.store.AppendHistory(storage.HistoryRecord{
		GameID:    g.GameID,
		Message:   MsgGameCreated,
		CreatedAt: time.Now().UTC(),
	})

	return &GameView{Game: g, Username: user.Username, Message: MsgGameCreated}, nil
}

// GetGame retrieves the current state of a game.
func (s *Service) GetGame(gameID string) (*GameView, error) {
	rec, err := s.store.GetGame(gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	g := gameFromRecord(rec)
	user, err := s.store.GetUserByID(g.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game owner: %w", err)
	}

	return &GameView{Game: g, Username: user.Username, Message: statusMessage(g.Status)}, nil
}

// ListGames returns the named player's games, optionally only open ones.
func (s *Service) ListGames(username string, activeOnly bool) ([]*GameView, error) {
	user, err := s.GetUserByName(username)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListGamesByUser(user.UserID, activeOnly)
	if err != nil {
		return nil, err
	}

	views := make([]*GameView, 0, len(records))
	for i := range records {
		g := gameFromRecord(&records[i])
		views = append(views, &GameView{
			Game:     g,
			Username: user.Username,
			Message:  statusMessage(g.Status),
		})
	}
	return views, nil
}

// ApplyMove plays one full exchange: the player's disc drops into column,
// then, unless that ended the game, the computer answers with a uniformly
// random legal drop. The whole exchange commits atomically; concurrent
// moves on the same game are serialized by the game lock.
func (s *Service) ApplyMove(gameID string, column int) (*GameView, error) {
	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	var (
		view    *GameView
		entries []storage.HistoryRecord
	)

	err := s.store.WithTx(func(tx *sql.Tx) error {
		rec, err := s.store.GetGameTx(tx, gameID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}

		g := gameFromRecord(rec)
		if g.Status == core.StatusCanceled {
			return ErrGameCanceled
		}
		if g.Status.Terminal() {
			return ErrGameOver
		}

		now := time.Now().UTC()

		// Player half-move
		count, err := s.store.CountDiscsInColumnTx(tx, gameID, column)
		if err != nil {
			return err
		}
		row, err := g.ResolveMove(column, count)
		if err != nil {
			return err
		}
		if err := s.store.InsertDiscTx(tx, storage.DiscRecord{
			GameID:   gameID,
			UserID:   g.UserID,
			Column:   column,
			Row:      row,
			PlacedAt: now,
		}); err != nil {
			return err
		}
		g.Moves++

		discs, err := s.store.ListDiscsTx(tx, gameID)
		if err != nil {
			return err
		}
		b := board.Build(toBoardDiscs(discs), g.Rows, g.Columns)

		message := MsgContinue
		switch {
		case b.HasFourInARow(g.UserID):
			g.Finish(core.StatusWon)
			message = MsgWin
		case b.IsFull():
			g.Finish(core.StatusDrawn)
			message = MsgDrawPlayer
		}
		entries = append(entries, historyEntry(gameID, column, row, message, now))

		// Computer half-move, only while the game is still open
		if !g.Status.Terminal() {
			aiColumn, err := opponent.ChooseColumn(b.ColumnCounts(), g.Rows)
			if err != nil {
				return err
			}
			aiRow := b.ColumnCount(aiColumn)
			if err := s.store.InsertDiscTx(tx, storage.DiscRecord{
				GameID:   gameID,
				UserID:   s.computerID,
				Column:   aiColumn,
				Row:      aiRow,
				PlacedAt: now,
			}); err != nil {
				return err
			}

			discs = append(discs, storage.DiscRecord{
				GameID: gameID,
				UserID: s.computerID,
				Column: aiColumn,
				Row:    aiRow,
			})
			b = board.Build(toBoardDiscs(discs), g.Rows, g.Columns)

			message = MsgContinue
			switch {
			case b.HasFourInARow(s.computerID):
				g.Finish(core.StatusLost)
				message = MsgLoss
			case b.IsFull():
				g.Finish(core.StatusDrawn)
				message = MsgDrawComputer
			}
			entries = append(entries, historyEntry(gameID, aiColumn, aiRow, message, now))
		}

		if g.Status.Terminal() {
			if err := s.store.InsertScoreTx(tx, storage.ScoreRecord{
				UserID: g.UserID,
				GameID: gameID,
				Won:    g.Status == core.StatusWon,
				Moves:  g.Moves,
				Date:   now,
			}); err != nil {
				return err
			}
		}

		if err := s.store.UpdateGameTx(tx, recordFromGame(g)); err != nil {
			return err
		}

		view = &GameView{Game: g, Message: message}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// History is audit-only, appended after the move committed so a
	// rolled-back exchange leaves no trace.
	for _, entry := range entries {
		s.store.AppendHistory(entry)
	}

	user, err := s.store.GetUserByID(view.Game.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game owner: %w", err)
	}
	view.Username = user.Username

	return view, nil
}

// Cancel abandons an open game. Terminal games, canceled ones included,
// reject the request.
func (s *Service) Cancel(gameID string) (*GameView, error) {
	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	var view *GameView
	err := s.store.WithTx(func(tx *sql.Tx) error {
		rec, err := s.store.GetGameTx(tx, gameID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}

		g := gameFromRecord(rec)
		if g.Status == core.StatusCanceled {
			return ErrGameCanceled
		}
		if g.Status.Terminal() {
			return ErrGameOver
		}

		g.Finish(core.StatusCanceled)
		if err := s.store.UpdateGameTx(tx, recordFromGame(g)); err != nil {
			return err
		}

		view = &GameView{Game: g, Message: MsgCanceled}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.store.AppendHistory(storage.HistoryRecord{
		GameID:    gameID,
		Message:   MsgCanceled,
		CreatedAt: time.Now().UTC(),
	})

	user, err := s.store.GetUserByID(view.Game.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game owner: %w", err)
	}
	view.Username = user.Username

	return view, nil
}

// GameBoard renders a game's grid as ASCII, player discs as X and computer
// discs as O.
func (s *Service) GameBoard(gameID string) (string, error) {
	rec, err := s.store.GetGame(gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrGameNotFound
	}
	if err != nil {
		return "", err
	}

	discs, err := s.store.ListDiscs(gameID)
	if err != nil {
		return "", err
	}

	b := board.Build(toBoardDiscs(discs), rec.Rows, rec.Columns)
	return b.ToASCII(map[string]rune{
		rec.UserID:   'X',
		s.computerID: 'O',
	}), nil
}

// GameHistory returns a game's audit trail in creation order.
func (s *Service) GameHistory(gameID string) ([]storage.HistoryRecord, error) {
	if _, err := s.store.GetGame(gameID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return s.store.ListHistory(gameID)
}

func toBoardDiscs(records []storage.DiscRecord) []board.Disc {
	discs := make([]board.Disc, len(records))
	for i, r := range records {
		discs[i] = board.Disc{UserID: r.UserID, Column: r.Column, Row: r.Row}
	}
	return discs
}

func historyEntry(gameID string, column, row int, message string, at time.Time) storage.HistoryRecord {
	col, rw := column, row
	return storage.HistoryRecord{
		GameID:     gameID,
		MoveColumn: &col,
		MoveRow:    &rw,
		Message:    message,
		CreatedAt:  at,
	}
}
