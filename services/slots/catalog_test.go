package slots

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

type fakeLister struct {
	slots []models.Slot
	err   error
	calls int
}

func (f *fakeLister) ListSlots(ctx context.Context, date string) ([]models.Slot, error) {
	f.calls++
	return f.slots, f.err
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCatalogSortsAndCaches(t *testing.T) {
	backend := &fakeLister{slots: []models.Slot{
		{StartTime: "2025-10-13T14:00:00", Label: "2:00 PM"},
		{StartTime: "2025-10-13T09:00:00", Label: "9:00 AM"},
	}}
	catalog := NewCachedCatalog(backend, testRedis(t), time.Minute)

	first, err := catalog.Available(context.Background(), "2025-10-13")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "9:00 AM", first[0].Label)
	assert.Equal(t, "2:00 PM", first[1].Label)

	second, err := catalog.Available(context.Background(), "2025-10-13")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.calls, "second lookup must be served from cache")
}

func TestCatalogDistinctDatesAreSeparate(t *testing.T) {
	backend := &fakeLister{}
	catalog := NewCachedCatalog(backend, testRedis(t), time.Minute)

	_, err := catalog.Available(context.Background(), "2025-10-13")
	require.NoError(t, err)
	_, err = catalog.Available(context.Background(), "2025-10-14")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls)
}

func TestCatalogBackendErrorPropagates(t *testing.T) {
	backend := &fakeLister{err: &CatalogError{Code: "backendUnavailable", Message: "boom", Transient: true}}
	catalog := NewCachedCatalog(backend, testRedis(t), time.Minute)

	_, err := catalog.Available(context.Background(), "2025-10-13")
	require.Error(t, err)
	var ce *CatalogError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Transient)
}

func TestCatalogWithoutCacheStillLists(t *testing.T) {
	backend := &fakeLister{slots: []models.Slot{{StartTime: "2025-10-13T09:00:00", Label: "9:00 AM"}}}
	catalog := NewCachedCatalog(backend, nil, time.Minute)

	listed, err := catalog.Available(context.Background(), "2025-10-13")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = catalog.Available(context.Background(), "2025-10-13")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls)
}
