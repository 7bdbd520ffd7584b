// FILE: connect4/internal/server/storage/user.go
package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateUser creates a user with transaction isolation so duplicate
// registrations racing each other cannot both succeed
func (s *Store) CreateUser(record UserRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM users WHERE username = ? COLLATE NOCASE`,
		record.Username,
	).Scan(&count); err != nil {
		return fmt.Errorf("uniqueness check failed: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}

	_, err = tx.Exec(
		`INSERT INTO users (user_id, username, email, created_at) VALUES (?, ?, ?, ?)`,
		record.UserID, record.Username, record.Email, record.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// EnsureUser inserts a user if the username is not yet taken. Used for the
// reserved Computer opponent account at startup.
func (s *Store) EnsureUser(record UserRecord) error {
	err := s.CreateUser(record)
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

// GetUserByName retrieves a user by username (case-insensitive)
func (s *Store) GetUserByName(username string) (*UserRecord, error) {
	var user UserRecord
	err := s.db.QueryRow(
		`SELECT user_id, username, email, created_at FROM users WHERE username = ? COLLATE NOCASE`,
		username,
	).Scan(&user.UserID, &user.Username, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(userID string) (*UserRecord, error) {
	var user UserRecord
	err := s.db.QueryRow(
		`SELECT user_id, username, email, created_at FROM users WHERE user_id = ?`,
		userID,
	).Scan(&user.UserID, &user.Username, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserEmail replaces a user's contact address
func (s *Store) UpdateUserEmail(userID, email string) error {
	res, err := s.db.Exec(`UPDATE users SET email = ? WHERE user_id = ?`, email, userID)
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

// ListUsers returns every account, oldest first. Admin CLI use.
func (s *Store) ListUsers() ([]UserRecord, error) {
	rows, err := s.db.Query(
		`SELECT user_id, username, email, created_at FROM users ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.UserID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListUsersWithEmail returns users that have a contact address, for the
// open-game reminder job
func (s *Store) ListUsersWithEmail() ([]UserRecord, error) {
	rows, err := s.db.Query(
		`SELECT user_id, username, email, created_at FROM users WHERE email IS NOT NULL AND email != ''`,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.UserID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
