package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"meetbook/models"
	"meetbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const slotCachePrefix = "slots:"

// CatalogError signals a slot listing failure. Transient failures are reported
// to the user without advancing the conversation.
type CatalogError struct {
	Code      string
	Message   string
	Transient bool
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Lister is the scheduling backend's listing capability: available slots for
// one normalized date, no booking side effects.
type Lister interface {
	ListSlots(ctx context.Context, date string) ([]models.Slot, error)
}

// Catalog wraps a Lister and normalizes its results into an ordered slot
// sequence, caching per date.
type Catalog interface {
	Available(ctx context.Context, date string) ([]models.Slot, error)
}

// CachedCatalog caches backend slot lists in Redis keyed by date.
type CachedCatalog struct {
	Backend Lister
	Cache   *redis.Client
	TTL     time.Duration
}

func NewCachedCatalog(backend Lister, cache *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{Backend: backend, Cache: cache, TTL: ttl}
}

// Available returns the ordered slot list for date (YYYY-MM-DD), serving from
// cache when fresh.
func (c *CachedCatalog) Available(ctx context.Context, date string) ([]models.Slot, error) {
	logger := utils.GetLogger()
	key := slotCachePrefix + date

	if c.Cache != nil {
		if data, err := c.Cache.Get(ctx, key).Result(); err == nil {
			var cached []models.Slot
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				logger.Debug("Slot cache hit", zap.String("date", date))
				return cached, nil
			}
		}
	}

	listed, err := c.Backend.ListSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	ordered := sortByStart(listed)

	if c.Cache != nil {
		if data, err := json.Marshal(ordered); err == nil {
			if err := c.Cache.Set(ctx, key, data, c.TTL).Err(); err != nil {
				logger.Warn("Failed to cache slot list", zap.String("date", date), zap.Error(err))
			}
		}
	}
	return ordered, nil
}

// sortByStart orders slots by their start time without mutating the input.
func sortByStart(in []models.Slot) []models.Slot {
	out := make([]models.Slot, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}
