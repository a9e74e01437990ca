package solar

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestFindCycleTableLookup(t *testing.T) {
	tests := []struct {
		year        int
		cycleNumber int
	}{
		{1964, 20},
		{1970, 20},
		{1980, 21},
		{1990, 22},
		{2000, 23},
		{2014, 24},
		{2024, 25},
		{2030, 25},
	}

	for _, tt := range tests {
		cycle := FindCycle(date(tt.year, 6, 15))
		assert.Equal(t, tt.cycleNumber, cycle.CycleNumber, "year %d", tt.year)
	}
}

func TestCycleTableInvariants(t *testing.T) {
	for i, cycle := range historicalCycles {
		assert.Less(t, cycle.StartYear, cycle.PeakYear, "cycle %d", cycle.CycleNumber)
		assert.Less(t, cycle.PeakYear, cycle.EndYear, "cycle %d", cycle.CycleNumber)

		if i > 0 {
			prev := historicalCycles[i-1]
			assert.Equal(t, prev.EndYear, cycle.StartYear,
				"cycles %d and %d must be contiguous", prev.CycleNumber, cycle.CycleNumber)
		}
	}
}

func TestPredictFutureCycle(t *testing.T) {
	cycle := PredictFutureCycle(2035)

	assert.Equal(t, 26, cycle.CycleNumber)
	assert.Equal(t, 2030, cycle.StartYear)
	assert.Equal(t, 2041, cycle.EndYear)
	assert.Equal(t, float64(averageCycleMax), cycle.MaxSunspots)
	assert.Equal(t, models.PhaseMinimum, cycle.Phase)

	// Next extrapolated cycle picks up where the previous one ends.
	next := PredictFutureCycle(2045)
	assert.Equal(t, 27, next.CycleNumber)
	assert.Equal(t, 2041, next.StartYear)
}

func TestSunspotNumberNonNegative(t *testing.T) {
	model := NewModel(NoNoise)

	for year := 1964; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			sunspots := model.SunspotNumber(date(year, month, 15))
			assert.GreaterOrEqual(t, sunspots, 0, "year=%d month=%d", year, month)
		}
	}
}

func TestSunspotNumberWithNoiseStaysNonNegative(t *testing.T) {
	model := NewModel(RandomNoise(rand.New(rand.NewSource(42))))

	for i := 0; i < 1000; i++ {
		d := date(1964+i%67, 1+i%12, 15)
		assert.GreaterOrEqual(t, model.SunspotNumber(d), 0)
	}
}

func TestNoiseBand(t *testing.T) {
	quiet := NewModel(NoNoise)
	noisy := NewModel(RandomNoise(rand.New(rand.NewSource(1))))

	d := date(2024, 7, 15)
	base := quiet.SunspotNumber(d)

	for i := 0; i < 200; i++ {
		diff := noisy.SunspotNumber(d) - base
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, noiseAmplitude+1, "noise exceeded the documented band")
	}
}

func TestSharedModelConcurrentSampling(t *testing.T) {
	// One model, many goroutines: sampling must stay race-free (run under
	// -race) and every draw must stay in the valid range.
	model := NewModel(RandomNoise(rand.New(rand.NewSource(9))))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				d := date(1964+(offset+i)%67, 1+i%12, 15)
				assert.GreaterOrEqual(t, model.SunspotNumber(d), 0)
			}
		}(g)
	}
	wg.Wait()
}

func TestRiskTierThresholds(t *testing.T) {
	assert.Equal(t, models.RiskLow, RiskTier(0))
	assert.Equal(t, models.RiskLow, RiskTier(49))
	assert.Equal(t, models.RiskMedium, RiskTier(50))
	assert.Equal(t, models.RiskMedium, RiskTier(99))
	assert.Equal(t, models.RiskHigh, RiskTier(100))
	assert.Equal(t, models.RiskHigh, RiskTier(180))
}

func TestMentalHealthFactor(t *testing.T) {
	assert.Equal(t, 1.0, MentalHealthFactor(90))
	assert.Equal(t, 1.3, MentalHealthFactor(91))
}

func TestLifespanImpactSegments(t *testing.T) {
	// June removes the month perturbation.
	assert.Equal(t, 0.5, LifespanImpact(0, 6))
	assert.Equal(t, -0.3, LifespanImpact(30, 6))
	assert.Equal(t, -4.8, LifespanImpact(120, 6))
	assert.Equal(t, -6.6, LifespanImpact(200, 6))

	// Values past 200 clamp onto the top of the ramp.
	assert.Equal(t, -6.6, LifespanImpact(500, 6))

	// Month perturbation: +0.1 years per month past June.
	assert.InDelta(t, 1.1, LifespanImpact(0, 12), 0.001)
	assert.InDelta(t, 0.0, LifespanImpact(0, 1), 0.001)
}

func TestUVLevelBounds(t *testing.T) {
	for s := 0; s <= 300; s += 10 {
		uv := UVLevel(s)
		assert.GreaterOrEqual(t, uv, 5.0)
		assert.LessOrEqual(t, uv, 11.0)
	}
	assert.Equal(t, 5.0, UVLevel(0))
}

func TestSampleFields(t *testing.T) {
	model := NewModel(NoNoise)
	sample := model.Sample(date(2024, 7, 15))

	assert.GreaterOrEqual(t, sample.SunspotNumber, 0)
	assert.GreaterOrEqual(t, sample.GeomagneticIndex, 0)
	assert.LessOrEqual(t, sample.GeomagneticIndex, 9)
	assert.GreaterOrEqual(t, sample.UVRadiationLevel, 0.0)
	assert.LessOrEqual(t, sample.UVRadiationLevel, 11.0)
	assert.Contains(t, []models.RiskLevel{models.RiskLow, models.RiskMedium, models.RiskHigh}, sample.SolarRisk)
	assert.Greater(t, sample.SolarFluxIndex, 0.0)
	assert.GreaterOrEqual(t, sample.CosmicRayIntensity, 0.0)
	assert.LessOrEqual(t, sample.CosmicRayIntensity, 100.0)
}

// stubCache is a minimal SampleCache for service tests.
type stubCache struct {
	samples map[string]*models.SolarActivityData
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{samples: make(map[string]*models.SolarActivityData)}
}

func (c *stubCache) GetSolarSample(key string) (*models.SolarActivityData, bool) {
	sample, ok := c.samples[key]
	return sample, ok
}

func (c *stubCache) SetSolarSample(key string, sample *models.SolarActivityData) {
	c.samples[key] = sample
	c.sets++
}

func TestServiceMemoizesPerDate(t *testing.T) {
	cache := newStubCache()
	service := NewService(NewModel(RandomNoise(rand.New(rand.NewSource(7)))), cache, zap.NewNop())

	d := date(2024, 7, 15)
	first := service.Fetch(d)
	second := service.Fetch(d)

	// Same already-randomized sample within a session, one cache fill.
	require.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)

	other := service.Fetch(date(2024, 8, 15))
	assert.Equal(t, 2, cache.sets)
	assert.NotEqual(t, first.Date, other.Date)
}
