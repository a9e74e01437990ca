package services

import (
	"sync"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"go.uber.org/zap"
)

type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// TimingCache bounds the two memoization maps the engine depends on: solar
// activity samples keyed by date string, and geocoding results keyed by
// normalized query. Entries carry a TTL and the oldest-expiring entry is
// evicted when a map would exceed the size budget.
type TimingCache struct {
	mu              sync.RWMutex
	solarSamples    map[string]CacheItem
	locations       map[string]CacheItem
	logger          *zap.Logger
	defaultDuration time.Duration
	maxSize         int
	cleanupInterval time.Duration
	stopCleanup     chan bool
}

func NewTimingCache(defaultDuration time.Duration, maxSize int, logger *zap.Logger) *TimingCache {
	cache := &TimingCache{
		solarSamples:    make(map[string]CacheItem),
		locations:       make(map[string]CacheItem),
		logger:          logger,
		defaultDuration: defaultDuration,
		maxSize:         maxSize,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan bool),
	}

	go cache.startCleanup()

	return cache
}

// SetSolarSample stores a sample under its date key. Within the TTL every
// query for that date sees the same already-randomized sample.
func (c *TimingCache) SetSolarSample(key string, sample *models.SolarActivityData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.solarSamples) >= c.maxSize {
		evictOldest(c.solarSamples, c.logger, "solar sample")
	}

	c.solarSamples[key] = CacheItem{
		Data:      sample,
		ExpiresAt: time.Now().Add(c.defaultDuration),
	}

	c.logger.Debug("Solar sample cached", zap.String("date", key))
}

func (c *TimingCache) GetSolarSample(key string) (*models.SolarActivityData, bool) {
	c.mu.RLock()
	item, exists := c.solarSamples[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Now().After(item.ExpiresAt) {
		c.mu.Lock()
		delete(c.solarSamples, key)
		c.mu.Unlock()
		return nil, false
	}

	sample, ok := item.Data.(*models.SolarActivityData)
	return sample, ok
}

func (c *TimingCache) SetLocation(query string, location *models.LocationData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.locations) >= c.maxSize {
		evictOldest(c.locations, c.logger, "location")
	}

	c.locations[query] = CacheItem{
		Data:      location,
		ExpiresAt: time.Now().Add(c.defaultDuration),
	}

	c.logger.Debug("Location cached", zap.String("query", query))
}

func (c *TimingCache) GetLocation(query string) (*models.LocationData, bool) {
	c.mu.RLock()
	item, exists := c.locations[query]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Now().After(item.ExpiresAt) {
		c.mu.Lock()
		delete(c.locations, query)
		c.mu.Unlock()
		return nil, false
	}

	location, ok := item.Data.(*models.LocationData)
	return location, ok
}

func evictOldest(m map[string]CacheItem, logger *zap.Logger, kind string) {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range m {
		if oldestKey == "" || item.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(m, oldestKey)
		logger.Debug("Evicted oldest cache entry",
			zap.String("kind", kind),
			zap.String("key", oldestKey))
	}
}

func (c *TimingCache) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *TimingCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expiredCount := 0

	for key, item := range c.solarSamples {
		if now.After(item.ExpiresAt) {
			delete(c.solarSamples, key)
			expiredCount++
		}
	}

	for query, item := range c.locations {
		if now.After(item.ExpiresAt) {
			delete(c.locations, query)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Cleaned expired cache items",
			zap.Int("count", expiredCount))
	}
}

func (c *TimingCache) Stop() {
	close(c.stopCleanup)
}

func (c *TimingCache) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"solar_sample_items": len(c.solarSamples),
		"location_items":     len(c.locations),
		"max_size":           c.maxSize,
		"default_duration":   c.defaultDuration.String(),
	}
}
