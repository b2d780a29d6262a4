package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"property-storefront/internal/models"
)

// Source lists the listings to push into the index.
type Source interface {
	List() []models.Property
}

// Indexer receives the full listing set on every run.
type Indexer interface {
	IndexProperties(properties []models.Property) error
}

// Scheduler handles the scheduled search reindex
type Scheduler struct {
	cron    *cron.Cron
	source  Source
	indexer Indexer
	runTime string
	enabled bool
	log     *zap.Logger

	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a new scheduler running daily at runTime ("HH:MM").
// A nil indexer disables it.
func NewScheduler(source Source, indexer Indexer, runTime string, enabled bool, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(),
		source:  source,
		indexer: indexer,
		runTime: runTime,
		enabled: enabled && indexer != nil,
		log:     log.Named("scheduler"),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.enabled {
		s.log.Info("daily reindex is disabled")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.runTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		s.log.Info("starting daily reindex")
		if _, err := s.RunNow(); err != nil {
			s.log.Error("daily reindex failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.mu.Lock()
	s.isRunning = true
	s.mu.Unlock()
	s.log.Info("started", zap.String("run_time", s.runTime), zap.String("cron", cronSpec))

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		<-s.cron.Stop().Done()
		s.isRunning = false
		s.log.Info("stopped")
	}
}

// RunNow pushes every listing into the index and returns how many were sent.
func (s *Scheduler) RunNow() (int, error) {
	if s.indexer == nil {
		return 0, fmt.Errorf("search index is not configured")
	}
	properties := s.source.List()
	if err := s.indexer.IndexProperties(properties); err != nil {
		return 0, fmt.Errorf("reindex %d properties: %w", len(properties), err)
	}
	s.log.Info("reindex completed", zap.Int("properties", len(properties)))
	return len(properties), nil
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	s.log.Warn("failed to parse run time, using default 03:00", zap.String("run_time", timeStr))
	return "0 3 * * *"
}
