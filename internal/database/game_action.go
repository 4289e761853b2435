// internal/database/game_action.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/game"
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// ActionArchive writes historian batches into Postgres.
type ActionArchive struct {
	db TxStarter
}

func NewActionArchive(db TxStarter) *ActionArchive {
	return &ActionArchive{db: db}
}

const (
	upsertGameQ = `
		INSERT INTO games (id, status, start_time)
		VALUES ($1, 'in_progress', $2)
		ON CONFLICT (id) DO NOTHING
	`
	insertActionQ = `
		INSERT INTO game_actions (
			game_id, action_id, action_index, actor_player_id, action_type, action_payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (action_id, action_index) DO NOTHING
	`
	finalizeGameQ = `
		UPDATE games
		SET status = 'completed', end_time = $2, winner_id = $3
		WHERE id = $1 AND status <> 'completed'
	`
	abandonGameQ = `
		UPDATE games
		SET status = 'abandoned', end_time = NOW()
		WHERE id = $1 AND status = 'in_progress'
	`
)

// InsertGameActions stores a batch in one transaction. Each game row is created on first
// sight and completed when its GameOver event arrives. Replayed records are ignored.
func (a *ActionArchive) InsertGameActions(ctx context.Context, records []cache.GameActionRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	seen := make(map[uuid.UUID]struct{})
	for _, rec := range records {
		ts := time.UnixMilli(rec.Timestamp).UTC()
		if _, ok := seen[rec.GameID]; !ok {
			seen[rec.GameID] = struct{}{}
			batch.Queue(upsertGameQ, rec.GameID, ts)
		}
		payload, err := json.Marshal(rec.ActionPayload)
		if err != nil {
			return fmt.Errorf("marshal payload for game %s: %w", rec.GameID, err)
		}
		batch.Queue(insertActionQ,
			rec.GameID, rec.ActionID, rec.ActionIndex, rec.ActorPlayerID, rec.ActionType, payload, ts,
		)
		if rec.ActionType == string(game.EventGameOver) {
			batch.Queue(finalizeGameQ, rec.GameID, ts, rec.ActorPlayerID)
		}
	}

	err := pgx.BeginTxFunc(ctx, a.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("insert %d game actions: %w", len(records), err)
	}
	return nil
}

// MarkGameAbandoned closes out a game that stopped receiving actions before it finished.
func (a *ActionArchive) MarkGameAbandoned(ctx context.Context, gameID uuid.UUID) error {
	err := pgx.BeginTxFunc(ctx, a.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, abandonGameQ, gameID)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark game %s abandoned: %w", gameID, err)
	}
	return nil
}
