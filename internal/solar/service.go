package solar

import (
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"go.uber.org/zap"
)

// SampleCache memoizes activity samples by date key so repeated queries for
// the same date return the same already-randomized sample within a session.
type SampleCache interface {
	GetSolarSample(key string) (*models.SolarActivityData, bool)
	SetSolarSample(key string, sample *models.SolarActivityData)
}

// Service is the solar data source used by the timing engine. There is no
// live observatory feed behind it: it always samples the synthetic cycle
// model, memoized per date through the injected cache. A real data source
// would replace Fetch while keeping the same surface.
type Service struct {
	model  *Model
	cache  SampleCache
	logger *zap.Logger
}

func NewService(model *Model, cache SampleCache, logger *zap.Logger) *Service {
	return &Service{
		model:  model,
		cache:  cache,
		logger: logger,
	}
}

// Fetch returns the activity sample for a date, serving from the cache when a
// sample for that calendar day already exists.
func (s *Service) Fetch(date time.Time) models.SolarActivityData {
	key := date.Format("2006-01-02")

	if s.cache != nil {
		if cached, ok := s.cache.GetSolarSample(key); ok {
			s.logger.Debug("Solar sample cache hit", zap.String("date", key))
			return *cached
		}
	}

	sample := s.model.Sample(date)

	if s.cache != nil {
		s.cache.SetSolarSample(key, &sample)
		s.logger.Debug("Solar sample computed",
			zap.String("date", key),
			zap.Int("sunspots", sample.SunspotNumber),
			zap.String("risk", string(sample.SolarRisk)))
	}

	return sample
}
