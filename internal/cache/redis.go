// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list the historian consumes.
const DefaultQueueName = "uno_actions"

// GameActionRecord holds the minimal info needed by the historian about one event.
// Events from a single request share an ActionID and are numbered by ActionIndex.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	ActionID      uuid.UUID              `json:"action_id"`
	ActionIndex   int                    `json:"action_index"`
	ActorPlayerID uuid.UUID              `json:"actor_player_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// ConnectRedis builds a client from cfg and pings it.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// ActionQueue pushes action records onto the historian's Redis list.
type ActionQueue struct {
	rdb    redis.Cmdable
	queue  string
	logger *logrus.Logger
}

// NewActionQueue returns a queue writing to the named list. An empty name uses DefaultQueueName.
func NewActionQueue(rdb redis.Cmdable, queue string, logger *logrus.Logger) *ActionQueue {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &ActionQueue{rdb: rdb, queue: queue, logger: logger}
}

// PublishGameActions converts events into records and RPUSHes them in one call. The
// action has already been persisted, so failures are logged and swallowed.
func (q *ActionQueue) PublishGameActions(ctx context.Context, gameID uuid.UUID, events game.Events) {
	if len(events) == 0 {
		return
	}
	records := NewGameActionRecords(gameID, uuid.New(), events)
	values := make([]interface{}, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			q.logger.WithError(err).WithField("game_id", gameID).Error("failed to marshal GameActionRecord")
			return
		}
		values = append(values, data)
	}
	if err := q.rdb.RPush(ctx, q.queue, values...).Err(); err != nil {
		q.logger.WithError(err).WithFields(logrus.Fields{
			"game_id": gameID,
			"queue":   q.queue,
		}).Warn("failed to publish game actions")
	}
}

// NewGameActionRecords maps an action's events onto historian records.
func NewGameActionRecords(gameID, actionID uuid.UUID, events game.Events) []GameActionRecord {
	out := make([]GameActionRecord, 0, len(events))
	for i, ev := range events {
		payload := map[string]interface{}{}
		if ev.CardIdx != nil {
			payload["cardIdx"] = *ev.CardIdx
		}
		if ev.Card != nil {
			payload["card"] = *ev.Card
		}
		if ev.Color != nil {
			payload["color"] = *ev.Color
		}
		out = append(out, GameActionRecord{
			GameID:        gameID,
			ActionID:      actionID,
			ActionIndex:   i,
			ActorPlayerID: ev.PlayerID,
			ActionType:    string(ev.Type),
			ActionPayload: payload,
			Timestamp:     ev.Timestamp.UnixMilli(),
		})
	}
	return out
}
