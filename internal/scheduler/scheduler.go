package scheduler

import (
	"github.com/robfig/cron/v3"

	"dronehub-backend/internal/jobs"
	"dronehub-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron in the store time zone with seconds precision
	c := cron.New(
		cron.WithLocation(jobRunner.Config().Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Keep product details warm in the cache
	_, err := s.cron.AddFunc(cfg.WarmProductCache, s.jobs.WarmProductCache)
	if err != nil {
		logger.Error("Failed to register WarmProductCache job", "error", err)
	}

	// Nightly drone configuration audit
	_, err = s.cron.AddFunc(cfg.AuditDroneConfig, s.jobs.AuditDroneConfig)
	if err != nil {
		logger.Error("Failed to register AuditDroneConfig job", "error", err)
	}

	logger.Info("All cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
