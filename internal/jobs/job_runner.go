package jobs

import (
	"toolshed-backend/internal/config"
	"toolshed-backend/internal/logger"
	"toolshed-backend/internal/repository"
	"toolshed-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	requestRepo repository.BorrowRequestRepository
	toolRepo    repository.ToolRepository
	userRepo    repository.UserRepository
	emailSvc    service.EmailService
	config      *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	requestRepo repository.BorrowRequestRepository,
	toolRepo repository.ToolRepository,
	userRepo repository.UserRepository,
	emailSvc service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		requestRepo: requestRepo,
		toolRepo:    toolRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		config:      cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
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

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.RemindStalePendingRequests()
	jr.RemindLongRunningLoans()
}
