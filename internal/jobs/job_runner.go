package jobs

import (
	"sacco-backend/internal/config"
	"sacco-backend/internal/logger"
	"sacco-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	batch  service.BatchService
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(batch service.BatchService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		batch:  batch,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
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

// RunAll runs every batch job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.WeeklyWelfareDeduction()
	jr.ApplyOverdueInterest()
}
