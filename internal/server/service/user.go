// FILE: connect4/internal/server/service/user.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"connect4/internal/server/storage"
)

// ComputerUsername is the reserved account that owns every opponent disc.
// Registration is case-insensitive, so no human can claim it.
const ComputerUsername = "Computer"

// CreateUser registers a new player. Usernames are unique ignoring case.
func (s *Service) CreateUser(username, email string) (*storage.UserRecord, error) {
	record := storage.UserRecord{
		UserID:    uuid.New().String(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateUser(record); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &record, nil
}

// GetUserByName looks up a player by username, ignoring case.
func (s *Service) GetUserByName(username string) (*storage.UserRecord, error) {
	user, err := s.store.GetUserByName(username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ensureComputerUser provisions the opponent account on startup and caches
// its ID for disc attribution.
func (s *Service) ensureComputerUser() error {
	err := s.store.EnsureUser(storage.UserRecord{
		UserID:    uuid.New().String(),
		Username:  ComputerUsername,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to provision computer account: %w", err)
	}

	computer, err := s.store.GetUserByName(ComputerUsername)
	if err != nil {
		return fmt.Errorf("failed to load computer account: %w", err)
	}
	s.computerID = computer.UserID
	return nil
}
