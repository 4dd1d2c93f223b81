package jobs

import (
	"dronehub-backend/internal/config"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/repository"
	"dronehub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    *Repositories
	services *Services
	config   *config.Config
}

// Repositories holds the stores read by jobs
type Repositories struct {
	Drones     repository.DroneRepository
	Currencies repository.StoreCurrencyRepository
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Storefront service.StorefrontService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos *Repositories, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:    repos,
		services: services,
		config:   cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.WarmProductCache()
	jr.AuditDroneConfig()
}
