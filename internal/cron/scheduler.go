package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jetpack-ops/jetpack/internal/service"
)

// schedulerActor marks jobs enqueued by the schedule rather than an admin.
const schedulerActor = "scheduler"

// Scheduler enqueues the nightly data sync.
type Scheduler struct {
	cron     *cron.Cron
	sync     *service.SyncService
	schedule string
	logger   *zap.Logger
}

// NewScheduler builds the scheduler. schedule is a standard five-field cron
// expression.
func NewScheduler(syncService *service.SyncService, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sync:     syncService,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the sync entry and begins the schedule.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		job, err := s.sync.Enqueue(context.Background(), schedulerActor)
		if err != nil {
			s.logger.Error("scheduled sync enqueue failed", zap.Error(err))
			return
		}
		s.logger.Info("scheduled sync enqueued", zap.String("job_id", job.ID))
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the schedule. Entries already running are not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}
