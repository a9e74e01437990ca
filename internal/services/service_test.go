package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/config"
	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/bobby-s-dev/birth-timing/internal/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGeocoder struct {
	calls     int
	locations map[string]models.LocationData
}

func (g *stubGeocoder) Resolve(ctx context.Context, query string) (*models.LocationData, error) {
	g.calls++
	if loc, ok := g.locations[query]; ok {
		copied := loc
		return &copied, nil
	}
	return nil, errors.New("no match")
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.Duration = time.Minute
	cfg.Cache.MaxSize = 100
	cfg.Engine.NoiseSeed = 7
	return cfg
}

func newTestService() (*TimingService, *stubGeocoder) {
	geocoder := &stubGeocoder{
		locations: map[string]models.LocationData{
			"London": {Latitude: 51.5074, Longitude: -0.1278, City: "London", Country: "United Kingdom"},
		},
	}
	return NewTimingService(testConfig(), geocoder, zap.NewNop()), geocoder
}

func TestScoreProducesResult(t *testing.T) {
	service, _ := newTestService()
	defer service.Stop()

	loc := models.LocationData{Latitude: 40.7128, Longitude: -74.0060, Country: "United States"}
	result := service.Score(loc, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))

	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
	assert.NotEmpty(t, result.RiskFactors)
	assert.NotEmpty(t, result.Recommendations)
	assert.False(t, service.GetLastQueryTime().IsZero())
}

func TestAnalyzeRejectsBadRange(t *testing.T) {
	service, _ := newTestService()
	defer service.Stop()

	loc := models.LocationData{Latitude: 40}
	now := time.Now()

	_, err := service.Analyze(loc, now, 0)
	assert.ErrorIs(t, err, timing.ErrInvalidInput)

	_, err = service.Analyze(loc, now, 37)
	assert.ErrorIs(t, err, timing.ErrInvalidInput)

	_, err = service.Analyze(loc, now, 12)
	assert.NoError(t, err)
}

func TestResolveLocationCaches(t *testing.T) {
	service, geocoder := newTestService()
	defer service.Stop()

	ctx := context.Background()

	first, err := service.ResolveLocation(ctx, "London")
	require.NoError(t, err)
	assert.Equal(t, "London", first.City)
	assert.Equal(t, 1, geocoder.calls)

	// Second lookup, including different casing, is served from cache.
	second, err := service.ResolveLocation(ctx, "  london ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, geocoder.calls)
}

func TestResolveLocationEmptyQuery(t *testing.T) {
	service, _ := newTestService()
	defer service.Stop()

	_, err := service.ResolveLocation(context.Background(), "   ")
	assert.ErrorIs(t, err, timing.ErrInvalidInput)
}

func TestWarmPopulatesCaches(t *testing.T) {
	service, geocoder := newTestService()
	defer service.Stop()

	require.NoError(t, service.Warm(context.Background(), "London", 3))
	assert.Equal(t, 1, geocoder.calls)

	stats := service.GetStats()
	cacheStats := stats["cache_stats"].(map[string]interface{})
	assert.Equal(t, 1, cacheStats["location_items"])
	assert.Equal(t, 7, cacheStats["solar_sample_items"], "3-month radius warms 7 monthly samples")
}

func TestWarmUnknownCityFails(t *testing.T) {
	service, _ := newTestService()
	defer service.Stop()

	assert.Error(t, service.Warm(context.Background(), "Nowhereville", 3))
}
