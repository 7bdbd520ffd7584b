// FILE: connect4/internal/server/game/game.go
package game

import (
	"errors"
	"time"

	"connect4/internal/server/core"
)

const (
	DefaultRows    = 6
	DefaultColumns = 7
	MinDimension   = 4
	MaxDimension   = 16
)

var (
	ErrInvalidColumn = errors.New("column outside board boundaries")
	ErrColumnFull    = errors.New("column is filled")
)

// Game is the persistent game entity. The grid contents live in the discs
// table; Game carries the fixed dimensions and the lifecycle state.
type Game struct {
	GameID     string
	UserID     string // owning human player
	Rows       int
	Columns    int
	Moves      int // human half-moves only
	Status     core.Status
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// New creates an active game for the given owner. Dimensions outside
// [MinDimension, MaxDimension] fall back to the classic 6x7 grid.
func New(gameID, userID string, rows, columns int) *Game {
	if rows < MinDimension || rows > MaxDimension {
		rows = DefaultRows
	}
	if columns < MinDimension || columns > MaxDimension {
		columns = DefaultColumns
	}
	return &Game{
		GameID:    gameID,
		UserID:    userID,
		Rows:      rows,
		Columns:   columns,
		Moves:     0,
		Status:    core.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
}

// Capacity returns the total number of cells on the grid.
func (g *Game) Capacity() int {
	return g.Rows * g.Columns
}

// Finish moves the game into a terminal status. Idempotent guards live in
// the service layer; Finish assumes the transition was already validated.
func (g *Game) Finish(status core.Status) {
	now := time.Now().UTC()
	g.Status = status
	g.FinishedAt = &now
}

// ResolveMove validates a drop into column given the authoritative disc
// count of that column and returns the landing row (0 = bottom). The count
// must be read under the same per-game critical section as the disc write,
// otherwise two concurrent moves can land on the same row.
func (g *Game) ResolveMove(column, count int) (int, error) {
	if column < 0 || column >= g.Columns {
		return -1, ErrInvalidColumn
	}
	if count >= g.Rows {
		return -1, ErrColumnFull
	}
	return count, nil
}
