package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler periodically warms the geocoding and analysis caches for the
// configured default cities so interactive requests stay cheap.
type Scheduler struct {
	service     *services.TimingService
	logger      *zap.Logger
	cities      []string
	rangeMonths int
	interval    time.Duration
	cron        *cron.Cron
	entryID     cron.EntryID

	mu      sync.Mutex
	running bool
	lastRun time.Time
}

func NewScheduler(service *services.TimingService, cities []string, rangeMonths int, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service:     service,
		logger:      logger,
		cities:      cities,
		rangeMonths: rangeMonths,
		interval:    interval,
		cron:        cron.New(),
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	spec := fmt.Sprintf("@every %s", s.interval)
	entryID, err := s.cron.AddFunc(spec, s.warmAll)
	if err != nil {
		return fmt.Errorf("scheduling cache warm: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started",
		zap.Duration("interval", s.interval),
		zap.Strings("cities", s.cities))

	// Warm once on startup instead of waiting a full interval.
	go s.warmAll()

	return nil
}

func (s *Scheduler) warmAll() {
	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()

	startTime := time.Now()
	s.logger.Info("Starting scheduled cache warm",
		zap.Strings("cities", s.cities))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	failures := 0
	for _, city := range s.cities {
		if err := s.service.Warm(ctx, city, s.rangeMonths); err != nil {
			failures++
			s.logger.Error("Cache warm failed for city",
				zap.String("city", city),
				zap.Error(err))
		}
	}

	s.logger.Info("Scheduled cache warm completed",
		zap.Int("cities", len(s.cities)),
		zap.Int("failures", failures),
		zap.Duration("duration", time.Since(startTime)))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

// ForceRun triggers an immediate warm outside the cron schedule.
func (s *Scheduler) ForceRun() {
	s.logger.Info("Manually triggering cache warm")
	go s.warmAll()
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":      s.running,
		"interval":     s.interval.String(),
		"last_run":     s.lastRun,
		"cities":       s.cities,
		"range_months": s.rangeMonths,
	}

	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}

	return status
}
