// FILE: connect4/internal/server/storage/score.go
package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// InsertScoreTx records the final outcome of a game inside the terminal
// move transaction. The UNIQUE(game_id) constraint guarantees at most one
// score per game.
func (s *Store) InsertScoreTx(tx *sql.Tx, record ScoreRecord) error {
	_, err := tx.Exec(
		`INSERT INTO scores (user_id, game_id, won, moves, date) VALUES (?, ?, ?, ?, ?)`,
		record.UserID, record.GameID, record.Won, record.Moves, record.Date,
	)
	return err
}

// ListScores retrieves scores, optionally filtered by user, newest first
func (s *Store) ListScores(userID string) ([]ScoreRecord, error) {
	query := `SELECT score_id, user_id, game_id, won, moves, date FROM scores`
	var args []any

	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY date DESC, score_id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var scores []ScoreRecord
	for rows.Next() {
		var sc ScoreRecord
		if err := rows.Scan(&sc.ScoreID, &sc.UserID, &sc.GameID, &sc.Won, &sc.Moves, &sc.Date); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// UserTally aggregates a user's scored games
type UserTally struct {
	UserID   string
	Username string
	Wins     int
	Games    int
}

// ScoreTallies returns per-user win/game totals for ranking computation
func (s *Store) ScoreTallies() ([]UserTally, error) {
	rows, err := s.db.Query(
		`SELECT u.user_id, u.username,
			SUM(CASE WHEN sc.won THEN 1 ELSE 0 END),
			COUNT(sc.score_id)
		 FROM scores sc JOIN users u ON u.user_id = sc.user_id
		 GROUP BY u.user_id, u.username`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var tallies []UserTally
	for rows.Next() {
		var t UserTally
		if err := rows.Scan(&t.UserID, &t.Username, &t.Wins, &t.Games); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

// AppendHistory asynchronously records an audit entry. History is
// non-critical: entries are dropped when the queue is full or the store is
// degraded, matching the async writer contract.
func (s *Store) AppendHistory(record HistoryRecord) error {
	if !s.healthStatus.Load() {
		return nil // Silently drop if degraded
	}

	select {
	case s.writeChan <- func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO history (game_id, move_col, move_row, message, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			record.GameID, record.MoveColumn, record.MoveRow, record.Message, record.CreatedAt,
		)
		return err
	}:
		return nil
	default:
		// Channel full, drop write
		log.Printf("Storage write queue full, dropping history entry")
		return nil
	}
}

// ListHistory returns a game's audit entries in creation order
func (s *Store) ListHistory(gameID string) ([]HistoryRecord, error) {
	rows, err := s.db.Query(
		`SELECT entry_id, game_id, move_col, move_row, message, created_at
		 FROM history WHERE game_id = ? ORDER BY entry_id ASC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []HistoryRecord
	for rows.Next() {
		var h HistoryRecord
		if err := rows.Scan(&h.EntryID, &h.GameID, &h.MoveColumn, &h.MoveRow, &h.Message, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}
