package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return mr, NewRedisStore(rdb, time.Hour, 30*time.Minute, logger)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, store := newTestRedisStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, store.Save(ctx, "sid-1", rec))

	got, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.User.ID, got.User.ID)
	assert.Equal(t, rec.User.Roles, got.User.Roles)
	assert.True(t, rec.User.CreatedAt.Equal(got.User.CreatedAt))

	// record carries the configured TTL
	mr.FastForward(2 * time.Hour)
	got, err = store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreAbsent(t *testing.T) {
	_, store := newTestRedisStore(t)

	got, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreCorruption(t *testing.T) {
	mr, store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid-1", sampleRecord()))
	require.NoError(t, mr.Set(recordKey("sid-1"), "{not json"))

	got, err := store.Load(ctx, "sid-1")
	require.NoError(t, err, "corruption reads as absence")
	assert.Nil(t, got)

	// the broken key was deleted outright
	assert.False(t, mr.Exists(recordKey("sid-1")))
}

func TestRedisStoreDelete(t *testing.T) {
	_, store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid-1", sampleRecord()))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	got, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreFlow(t *testing.T) {
	mr, store := newTestRedisStore(t)
	ctx := context.Background()

	snap := &FlowSnapshot{State: StateOTPPending, Origin: StateLogin, Phone: "9876543210", UpdatedAt: time.Now().UTC()}
	require.NoError(t, store.SaveFlow(ctx, "sid-1", snap))

	got, err := store.LoadFlow(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StateOTPPending, got.State)

	// flow snapshots expire faster than session records
	mr.FastForward(45 * time.Minute)
	got, err = store.LoadFlow(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
