package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ltplabs/ecatalog/internal/database/store"
)

// DefaultMaintenanceSchedule runs maintenance at the top of every hour.
const DefaultMaintenanceSchedule = "@hourly"

// HousekeepingService periodically refreshes SQLite planner statistics and
// truncates the WAL so the database file does not grow unbounded.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Schedule string

	cron *cron.Cron
}

// NewHousekeepingService creates a housekeeping service. An empty schedule
// falls back to DefaultMaintenanceSchedule.
func NewHousekeepingService(st store.Store, logger *slog.Logger, schedule string) *HousekeepingService {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the maintenance job and starts the scheduler. It returns
// an error when the schedule cannot be parsed.
func (s *HousekeepingService) Start() error {
	if _, err := s.cron.AddFunc(s.Schedule, s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.Logger.Info("housekeeping service started", "schedule", s.Schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *HousekeepingService) Stop() {
	<-s.cron.Stop().Done()
	s.Logger.Info("housekeeping service stopped")
}

// RunOnce performs a single maintenance pass.
func (s *HousekeepingService) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.Store.Optimize(ctx); err != nil {
		s.Logger.Error("database maintenance failed", "error", err)
		return
	}
	s.Logger.Info("database maintenance completed", "duration_ms", time.Since(start).Milliseconds())
}
