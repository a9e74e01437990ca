package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/config"
	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/bobby-s-dev/birth-timing/internal/solar"
	"github.com/bobby-s-dev/birth-timing/internal/timing"
	"go.uber.org/zap"
)

// Geocoder resolves free-text queries to locations. Resolution is the only
// fallible, I/O-bound step in an analysis request; the engine behind it never
// fails on well-formed input.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (*models.LocationData, error)
}

// TimingService is the composition root for the scoring pipeline: it owns the
// bounded cache, the seeded solar model and the engine, and fronts the
// geocoding collaborator.
type TimingService struct {
	engine   *timing.Engine
	geocoder Geocoder
	cache    *TimingCache
	logger   *zap.Logger

	mu            sync.RWMutex
	lastQueryTime time.Time
	successCount  int
	failureCount  int
}

func NewTimingService(cfg *config.Config, geocoder Geocoder, logger *zap.Logger) *TimingService {
	cache := NewTimingCache(cfg.Cache.Duration, cfg.Cache.MaxSize, logger)

	seed := cfg.Engine.NoiseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		logger.Info("Solar noise seed pinned", zap.Int64("seed", seed))
	}

	model := solar.NewModel(solar.RandomNoise(rand.New(rand.NewSource(seed))))
	solarService := solar.NewService(model, cache, logger)
	engine := timing.NewEngine(solarService, logger)

	return &TimingService{
		engine:   engine,
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
	}
}

// Score computes a single-month timing result.
func (s *TimingService) Score(location models.LocationData, targetDate time.Time) models.OptimalTimingResult {
	s.recordQuery()
	return s.engine.Calculate(location, targetDate)
}

// Analyze evaluates the monthly window around the target date.
func (s *TimingService) Analyze(location models.LocationData, targetDate time.Time, rangeMonths int) (models.TimingAnalysis, error) {
	if rangeMonths < 1 || rangeMonths > 36 {
		return models.TimingAnalysis{}, fmt.Errorf("%w: range must be between 1 and 36 months", timing.ErrInvalidInput)
	}

	s.recordQuery()
	return s.engine.AnalyzeRange(location, targetDate, rangeMonths), nil
}

// Report builds the exportable optimality report.
func (s *TimingService) Report(location models.LocationData, targetDate time.Time, rangeMonths int) models.OptimalityReport {
	s.recordQuery()
	return s.engine.Report(location, targetDate, rangeMonths)
}

// ResolveLocation resolves a free-text place query through the cache and the
// geocoding client.
func (s *TimingService) ResolveLocation(ctx context.Context, query string) (*models.LocationData, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil, fmt.Errorf("%w: empty location query", timing.ErrInvalidInput)
	}

	if cached, ok := s.cache.GetLocation(key); ok {
		s.logger.Debug("Location cache hit", zap.String("query", key))
		return cached, nil
	}

	location, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		s.mu.Lock()
		s.failureCount++
		s.mu.Unlock()
		return nil, fmt.Errorf("resolving %q: %w", query, err)
	}

	s.cache.SetLocation(key, location)
	s.mu.Lock()
	s.successCount++
	s.mu.Unlock()

	return location, nil
}

// Warm resolves a city and runs a range analysis so that interactive queries
// hit warm caches. Used by the scheduler.
func (s *TimingService) Warm(ctx context.Context, city string, rangeMonths int) error {
	location, err := s.ResolveLocation(ctx, city)
	if err != nil {
		return err
	}

	if _, err := s.Analyze(*location, time.Now(), rangeMonths); err != nil {
		return err
	}

	s.logger.Debug("Warmed timing caches", zap.String("city", city))
	return nil
}

func (s *TimingService) recordQuery() {
	s.mu.Lock()
	s.lastQueryTime = time.Now()
	s.mu.Unlock()
}

func (s *TimingService) GetLastQueryTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastQueryTime
}

func (s *TimingService) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"last_query_time":   s.lastQueryTime,
		"geocode_successes": s.successCount,
		"geocode_failures":  s.failureCount,
		"cache_stats":       s.cache.GetStats(),
	}
}

// Stop terminates the cache cleanup goroutine.
func (s *TimingService) Stop() {
	s.cache.Stop()
}
