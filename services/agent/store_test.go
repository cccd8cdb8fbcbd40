package agent

import (
	"context"
	"testing"
	"time"

	"meetbook/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUnknownReturnsNil(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisSessionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)

	sess, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStoreRoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisSessionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	ctx := context.Background()

	sess := models.NewSession("s-1")
	sess.DateNormalized = "2025-10-13"
	sess.NextStep = models.StepAwaitSlotSelection
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, models.StepAwaitSlotSelection, loaded.NextStep)
	assert.Equal(t, "2025-10-13", loaded.DateNormalized)

	// Abandoned sessions expire on their own.
	mr.FastForward(2 * time.Minute)
	loaded, err = store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStoreDeleteAndCount(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisSessionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.NewSession("a")))
	require.NoError(t, store.Save(ctx, models.NewSession("b")))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, store.Delete(ctx, "a"))
	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
