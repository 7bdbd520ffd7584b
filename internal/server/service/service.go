// FILE: connect4/internal/server/service/service.go
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"connect4/internal/server/storage"
)

// Service-level errors, mapped to API error codes by the processor.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already taken")
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game already over")
	ErrGameCanceled = errors.New("game already canceled")
)

// Cache is the optional read-through cache for derived statistics. A nil
// cache disables caching; every Get error is treated as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service contains the game business logic. Move application and
// cancellation for one game are serialized through a per-game lock so the
// read-resolve-write sequence never interleaves.
type Service struct {
	store *storage.Store
	cache Cache

	computerID string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a service instance and provisions the reserved
// computer opponent account.
func NewService(store *storage.Store, cache Cache) (*Service, error) {
	s := &Service{
		store: store,
		cache: cache,
		locks: make(map[string]*sync.Mutex),
	}
	if err := s.ensureComputerUser(); err != nil {
		return nil, err
	}
	return s, nil
}

// StorageHealthy reports the storage state for health checks.
func (s *Service) StorageHealthy() bool {
	return s.store.IsHealthy()
}

// gameLock returns the mutex serializing mutations of one game, creating
// it on first use.
func (s *Service) gameLock(gameID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[gameID] = lock
	}
	return lock
}

// PruneLocks drops lock entries for games that can no longer be mutated.
// A concurrent request on a pruned game re-creates the entry and is then
// rejected on the status check, so pruning terminal games is safe.
func (s *Service) PruneLocks() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.locks))
	for id := range s.locks {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	pruned := 0
	for _, id := range ids {
		rec, err := s.store.GetGame(id)
		if err == nil && rec.Status == "active" {
			continue
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			continue
		}
		s.mu.Lock()
		delete(s.locks, id)
		s.mu.Unlock()
		pruned++
	}

	if pruned > 0 {
		log.Printf("Pruned %d game locks", pruned)
	}
}
