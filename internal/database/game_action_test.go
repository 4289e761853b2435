package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to UNO_TEST_DATABASE_URL, skipping when it is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("UNO_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("UNO_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := ConnectDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func TestInsertGameActions(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	archive := NewActionArchive(pool)

	gameID, actionID, player := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UnixMilli()
	records := []cache.GameActionRecord{
		{GameID: gameID, ActionID: actionID, ActionIndex: 0, ActorPlayerID: player, ActionType: "PlayCard",
			ActionPayload: map[string]interface{}{"cardIdx": 3}, Timestamp: now},
		{GameID: gameID, ActionID: actionID, ActionIndex: 1, ActorPlayerID: player, ActionType: "GameOver",
			ActionPayload: map[string]interface{}{}, Timestamp: now},
	}
	require.NoError(t, archive.InsertGameActions(ctx, records))
	// replays are ignored
	require.NoError(t, archive.InsertGameActions(ctx, records))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM game_actions WHERE game_id = $1`, gameID).Scan(&count))
	assert.Equal(t, 2, count)

	var status string
	var winner uuid.UUID
	require.NoError(t, pool.QueryRow(ctx, `SELECT status, winner_id FROM games WHERE id = $1`, gameID).Scan(&status, &winner))
	assert.Equal(t, "completed", status)
	assert.Equal(t, player, winner)

	// completed games are never marked abandoned
	require.NoError(t, archive.MarkGameAbandoned(ctx, gameID))
	require.NoError(t, pool.QueryRow(ctx, `SELECT status FROM games WHERE id = $1`, gameID).Scan(&status))
	assert.Equal(t, "completed", status)
}

func TestInsertGameActionsEmpty(t *testing.T) {
	assert.NoError(t, NewActionArchive(nil).InsertGameActions(context.Background(), nil))
}
