// FILE: connect4/internal/server/storage/game.go
package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateGame inserts a new active game row
func (s *Store) CreateGame(record GameRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO games (game_id, user_id, rows, columns, moves, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.GameID, record.UserID, record.Rows, record.Columns,
		record.Moves, record.Status, record.CreatedAt,
	)
	return err
}

// GetGame retrieves a game by ID
func (s *Store) GetGame(gameID string) (*GameRecord, error) {
	return scanGame(s.db.QueryRow(
		`SELECT game_id, user_id, rows, columns, moves, status, created_at, finished_at
		 FROM games WHERE game_id = ?`, gameID))
}

// GetGameTx retrieves a game inside a move-application transaction
func (s *Store) GetGameTx(tx *sql.Tx, gameID string) (*GameRecord, error) {
	return scanGame(tx.QueryRow(
		`SELECT game_id, user_id, rows, columns, moves, status, created_at, finished_at
		 FROM games WHERE game_id = ?`, gameID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*GameRecord, error) {
	var g GameRecord
	err := row.Scan(&g.GameID, &g.UserID, &g.Rows, &g.Columns,
		&g.Moves, &g.Status, &g.CreatedAt, &g.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGameTx persists the mutable game fields (move counter, status,
// finish time) inside the same transaction as the disc writes
func (s *Store) UpdateGameTx(tx *sql.Tx, record GameRecord) error {
	res, err := tx.Exec(
		`UPDATE games SET moves = ?, status = ?, finished_at = ? WHERE game_id = ?`,
		record.Moves, record.Status, record.FinishedAt, record.GameID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListGamesByUser returns a user's games, optionally only active ones,
// newest first
func (s *Store) ListGamesByUser(userID string, activeOnly bool) ([]GameRecord, error) {
	query := `SELECT game_id, user_id, rows, columns, moves, status, created_at, finished_at
		FROM games WHERE user_id = ?`
	args := []any{userID}

	if activeOnly {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.UserID, &g.Rows, &g.Columns,
			&g.Moves, &g.Status, &g.CreatedAt, &g.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// QueryGames filters games by ID and/or owner for the admin CLI; empty or
// "*" filters match everything
func (s *Store) QueryGames(gameID, userID string) ([]GameRecord, error) {
	query := `SELECT game_id, user_id, rows, columns, moves, status, created_at, finished_at
		FROM games WHERE 1=1`
	var args []any

	if gameID != "" && gameID != "*" {
		query += ` AND game_id = ?`
		args = append(args, gameID)
	}
	if userID != "" && userID != "*" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.UserID, &g.Rows, &g.Columns,
			&g.Moves, &g.Status, &g.CreatedAt, &g.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// CountActiveGamesByUser reports how many games a user still has open
func (s *Store) CountActiveGamesByUser(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM games WHERE user_id = ? AND status = 'active'`, userID,
	).Scan(&count)
	return count, err
}

// CountDiscsInColumnTx returns the authoritative disc count for one column,
// read under the move transaction so the landing row cannot be computed
// twice for the same cell
func (s *Store) CountDiscsInColumnTx(tx *sql.Tx, gameID string, column int) (int, error) {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM discs WHERE game_id = ? AND col = ?`, gameID, column,
	).Scan(&count)
	return count, err
}

// CountDiscsTx returns the total number of discs placed in a game
func (s *Store) CountDiscsTx(tx *sql.Tx, gameID string) (int, error) {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM discs WHERE game_id = ?`, gameID,
	).Scan(&count)
	return count, err
}

// ColumnCountsTx returns per-column disc counts for opponent move selection
func (s *Store) ColumnCountsTx(tx *sql.Tx, gameID string, columns int) ([]int, error) {
	counts := make([]int, columns)

	rows, err := tx.Query(
		`SELECT col, COUNT(*) FROM discs WHERE game_id = ? GROUP BY col`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var col, count int
		if err := rows.Scan(&col, &count); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if col >= 0 && col < columns {
			counts[col] = count
		}
	}
	return counts, rows.Err()
}

// InsertDiscTx appends a placed disc inside the move transaction
func (s *Store) InsertDiscTx(tx *sql.Tx, record DiscRecord) error {
	_, err := tx.Exec(
		`INSERT INTO discs (game_id, user_id, col, row, placed_at) VALUES (?, ?, ?, ?, ?)`,
		record.GameID, record.UserID, record.Column, record.Row, record.PlacedAt,
	)
	return err
}

// ListDiscs returns a game's discs in placement order
func (s *Store) ListDiscs(gameID string) ([]DiscRecord, error) {
	return s.listDiscs(s.db.Query, gameID)
}

// ListDiscsTx returns a game's discs in placement order within a transaction
func (s *Store) ListDiscsTx(tx *sql.Tx, gameID string) ([]DiscRecord, error) {
	return s.listDiscs(tx.Query, gameID)
}

func (s *Store) listDiscs(query func(string, ...any) (*sql.Rows, error), gameID string) ([]DiscRecord, error) {
	rows, err := query(
		`SELECT disc_id, game_id, user_id, col, row, placed_at
		 FROM discs WHERE game_id = ? ORDER BY disc_id ASC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var discs []DiscRecord
	for rows.Next() {
		var d DiscRecord
		if err := rows.Scan(&d.DiscID, &d.GameID, &d.UserID, &d.Column, &d.Row, &d.PlacedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		discs = append(discs, d)
	}
	return discs, rows.Err()
}

// ActiveGameCells returns, per active game, the grid capacity and the number
// of discs already placed. Input for the average-moves-remaining projection.
func (s *Store) ActiveGameCells() (capacities []int, placed []int, err error) {
	rows, err := s.db.Query(
		`SELECT g.rows * g.columns,
			(SELECT COUNT(*) FROM discs d WHERE d.game_id = g.game_id)
		 FROM games g WHERE g.status = 'active'`)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var capacity, count int
		if err := rows.Scan(&capacity, &count); err != nil {
			return nil, nil, fmt.Errorf("scan failed: %w", err)
		}
		capacities = append(capacities, capacity)
		placed = append(placed, count)
	}
	return capacities, placed, rows.Err()
}
