// internal/store/memory.go
//
// Persistence port for match snapshots plus the in-memory implementation.
//
// Characteristics:
//   - Snapshots are stored by value, keyed by game id.
//   - Concurrency-safe via RWMutex (concurrent reads allowed).
//   - Last-write-wins; serializing authoritative writes per game id is
//     the caller's responsibility, not the store's.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/psousa50/codenames50-sub000/internal/game"
)

// ErrNotFound is the not-found tag owned by the persistence boundary.
var ErrNotFound = errors.New("gameNotFound")

// Store defines the persistence interface for match snapshots.
// Implementations may be backed by memory (this file) or SQLite.
type Store interface {
	// Save persists or replaces a snapshot, keyed by its game id.
	Save(ctx context.Context, g game.Game) error

	// Get retrieves a snapshot by game id.
	// Returns ErrNotFound if no such match exists.
	Get(ctx context.Context, id string) (game.Game, error)

	// Delete removes a snapshot. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu    sync.RWMutex
	games map[string]game.Game
}

// NewMemoryStore constructs the in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.Game)}
}

func (m *memory) Save(ctx context.Context, g game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return game.Game{}, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
