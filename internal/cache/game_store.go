// internal/cache/game_store.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/redis/go-redis/v9"
)

// DefaultGameTTL is how long an idle game survives in the store.
const DefaultGameTTL = 2 * time.Hour

// ErrGameNotFound is returned when no snapshot exists for a game, including after it expired.
var ErrGameNotFound = errors.New("game not found")

// GameKey is the store key for a game snapshot.
func GameKey(id uuid.UUID) string {
	return "game:" + id.String()
}

// RedisGameStore keeps one JSON snapshot per game under GameKey, refreshing the TTL on
// every save.
type RedisGameStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisGameStore(rdb redis.Cmdable, ttl time.Duration) *RedisGameStore {
	if ttl <= 0 {
		ttl = DefaultGameTTL
	}
	return &RedisGameStore{rdb: rdb, ttl: ttl}
}

// SaveGame overwrites the snapshot for g.
func (s *RedisGameStore) SaveGame(ctx context.Context, g *game.Game) error {
	data, err := g.MarshalSnapshot()
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, GameKey(g.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}

// LoadGame reads and validates the snapshot for id.
func (s *RedisGameStore) LoadGame(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	data, err := s.rdb.Get(ctx, GameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return game.UnmarshalSnapshot(data)
}

// DeleteGame removes the snapshot for id. Missing games are not an error.
func (s *RedisGameStore) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, GameKey(id)).Err(); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}
