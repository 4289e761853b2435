// internal/historian/historian_test.go
package historian

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu        sync.Mutex
	batches   [][]cache.GameActionRecord
	abandoned []uuid.UUID
	err       error
}

func (f *fakeSink) InsertGameActions(_ context.Context, records []cache.GameActionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, records)
	return nil
}

func (f *fakeSink) MarkGameAbandoned(_ context.Context, gameID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abandoned = append(f.abandoned, gameID)
	return nil
}

func (f *fakeSink) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

// chanSource serves payloads from a channel.
type chanSource chan []byte

func (c chanSource) Pop(ctx context.Context, timeout time.Duration) ([]byte, bool, error) {
	select {
	case p := <-c:
		return p, true, nil
	case <-time.After(timeout):
		return nil, false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func payload(t *testing.T, gameID uuid.UUID, typ string, idx int) []byte {
	t.Helper()
	data, err := json.Marshal(cache.GameActionRecord{
		GameID:        gameID,
		ActionID:      uuid.New(),
		ActionIndex:   idx,
		ActorPlayerID: uuid.New(),
		ActionType:    typ,
		ActionPayload: map[string]interface{}{},
		Timestamp:     time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	return data
}

func TestHandleFlushesFullBatch(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sink := &fakeSink{}
	svc := NewService(nil, sink, Options{BatchSize: 3}, logger)
	ctx := context.Background()
	gameID := uuid.New()

	svc.Handle(ctx, payload(t, gameID, "PlayCard", 0))
	svc.Handle(ctx, payload(t, gameID, "DrawCard", 1))
	assert.Empty(t, sink.batches)
	assert.Equal(t, 2, svc.Pending())

	svc.Handle(ctx, payload(t, gameID, "DrawCard", 2))
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 3)
	assert.Zero(t, svc.Pending())
}

func TestHandleDropsGarbage(t *testing.T) {
	logger, hook := test.NewNullLogger()
	svc := NewService(nil, &fakeSink{}, Options{}, logger)

	svc.Handle(context.Background(), []byte("not json"))
	assert.Zero(t, svc.Pending())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestFlushFailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sink := &fakeSink{err: errors.New("db down")}
	svc := NewService(nil, sink, Options{BatchSize: 10}, logger)

	svc.Handle(context.Background(), payload(t, uuid.New(), "PlayCard", 0))
	svc.Flush(context.Background())

	assert.Zero(t, svc.Pending())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestSweepInactive(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sink := &fakeSink{}
	svc := NewService(nil, sink, Options{Inactivity: 10 * time.Minute}, logger)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	idle, finished, active := uuid.New(), uuid.New(), uuid.New()
	svc.Handle(ctx, payload(t, idle, "PlayCard", 0))
	svc.Handle(ctx, payload(t, finished, "PlayCard", 0))
	svc.Handle(ctx, payload(t, finished, "GameOver", 1))

	now = now.Add(9 * time.Minute)
	svc.Handle(ctx, payload(t, active, "DrawCard", 0))

	now = now.Add(2 * time.Minute)
	svc.SweepInactive(ctx)
	assert.Equal(t, []uuid.UUID{idle}, sink.abandoned)

	svc.SweepInactive(ctx)
	assert.Len(t, sink.abandoned, 1, "a game is only abandoned once")
}

func TestRunDrainsSourceAndFlushesOnShutdown(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sink := &fakeSink{}
	src := make(chanSource, 10)
	svc := NewService(src, sink, Options{
		BatchSize:  100,
		FlushDelay: time.Hour,
		PopTimeout: 10 * time.Millisecond,
	}, logger)

	gameID := uuid.New()
	for i := 0; i < 5; i++ {
		src <- payload(t, gameID, "DrawCard", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return svc.Pending() == 5 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("historian did not stop")
	}
	assert.Equal(t, 5, sink.total())
}

// TestRedisSource pushes a record through a real Redis list when one is reachable.
func TestRedisSource(t *testing.T) {
	ctx := context.Background()
	rdb, err := cache.ConnectRedis(ctx, config.RedisConfig{Addr: "localhost:6379", DB: 15})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer rdb.Close()

	queue := "uno_actions_test_" + uuid.NewString()
	defer rdb.Del(ctx, queue)

	src := NewRedisSource(rdb, queue)
	_, ok, err := src.Pop(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)

	data := payload(t, uuid.New(), "PlayCard", 0)
	require.NoError(t, rdb.RPush(ctx, queue, data).Err())
	got, ok, err := src.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, string(data), string(got))
}
