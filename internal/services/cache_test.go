package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSolarSampleRoundtrip(t *testing.T) {
	cache := NewTimingCache(time.Minute, 10, zap.NewNop())
	defer cache.Stop()

	sample := &models.SolarActivityData{SunspotNumber: 120, SolarRisk: models.RiskHigh}
	cache.SetSolarSample("2024-07-15", sample)

	got, ok := cache.GetSolarSample("2024-07-15")
	require.True(t, ok)
	assert.Equal(t, sample, got)

	_, ok = cache.GetSolarSample("2024-07-16")
	assert.False(t, ok)
}

func TestSolarSampleExpiry(t *testing.T) {
	cache := NewTimingCache(10*time.Millisecond, 10, zap.NewNop())
	defer cache.Stop()

	cache.SetSolarSample("2024-07-15", &models.SolarActivityData{SunspotNumber: 50})

	time.Sleep(25 * time.Millisecond)

	_, ok := cache.GetSolarSample("2024-07-15")
	assert.False(t, ok, "expired entry must not be served")
}

func TestEvictionRespectsMaxSize(t *testing.T) {
	cache := NewTimingCache(time.Minute, 3, zap.NewNop())
	defer cache.Stop()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("2024-07-%02d", i+1)
		cache.SetSolarSample(key, &models.SolarActivityData{SunspotNumber: i})
	}

	stats := cache.GetStats()
	assert.LessOrEqual(t, stats["solar_sample_items"].(int), 3)
}

func TestLocationRoundtrip(t *testing.T) {
	cache := NewTimingCache(time.Minute, 10, zap.NewNop())
	defer cache.Stop()

	loc := &models.LocationData{Latitude: 51.5074, Longitude: -0.1278, City: "London"}
	cache.SetLocation("london", loc)

	got, ok := cache.GetLocation("london")
	require.True(t, ok)
	assert.Equal(t, loc, got)

	_, ok = cache.GetLocation("paris")
	assert.False(t, ok)
}

func TestLocationAndSolarMapsAreIndependent(t *testing.T) {
	cache := NewTimingCache(time.Minute, 2, zap.NewNop())
	defer cache.Stop()

	cache.SetSolarSample("2024-07-15", &models.SolarActivityData{})
	cache.SetLocation("london", &models.LocationData{City: "London"})

	stats := cache.GetStats()
	assert.Equal(t, 1, stats["solar_sample_items"])
	assert.Equal(t, 1, stats["location_items"])
}
