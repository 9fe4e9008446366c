package jobs

import (
	"fmt"
	"log/slog"
)

// DispatchConfig configures the dispatch job.
type DispatchConfig struct {
	Schedule  string
	BatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	dispatchJob *DispatchJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(dispatchHandler DispatchHandler, cfg DispatchConfig, logger *slog.Logger) (*JobManager, error) {
	dispatchJob, err := NewDispatchJob(dispatchHandler, cfg.Schedule, cfg.BatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch job: %w", err)
	}

	return &JobManager{
		dispatchJob: dispatchJob,
	}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchJob.Stop()
}
