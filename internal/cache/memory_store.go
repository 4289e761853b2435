// internal/cache/memory_store.go
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/game"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryGameStore is an in-process stand-in for RedisGameStore. It keeps serialized
// snapshots so every load hands out an independent copy, and honors the same TTL.
type MemoryGameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryGameStore(ttl time.Duration) *MemoryGameStore {
	if ttl <= 0 {
		ttl = DefaultGameTTL
	}
	return &MemoryGameStore{
		games: make(map[uuid.UUID]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryGameStore) SaveGame(_ context.Context, g *game.Game) error {
	data, err := g.MarshalSnapshot()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryGameStore) LoadGame(_ context.Context, id uuid.UUID) (*game.Game, error) {
	s.mu.Lock()
	entry, exists := s.games[id]
	if exists && !s.now().Before(entry.expiresAt) {
		delete(s.games, id)
		exists = false
	}
	s.mu.Unlock()

	if !exists {
		return nil, ErrGameNotFound
	}
	return game.UnmarshalSnapshot(entry.data)
}

func (s *MemoryGameStore) DeleteGame(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Len counts stored games, expired ones included until they are next touched.
func (s *MemoryGameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}
