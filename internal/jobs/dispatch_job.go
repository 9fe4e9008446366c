package jobs

import (
	"context"
	"errors"
	"log/slog"

	"riderdispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSchedule runs a dispatch round every five seconds.
const DefaultDispatchSchedule = "*/5 * * * * *"

// DispatchHandler runs one dispatch round.
type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchOrdersCommand) error
}

// DispatchJob offers pending orders to available riders on a schedule.
type DispatchJob struct {
	handler  DispatchHandler
	schedule string
	cmd      commands.DispatchOrdersCommand
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDispatchJob creates the job. An empty schedule falls back to DefaultDispatchSchedule.
func NewDispatchJob(handler DispatchHandler, schedule string, batchSize int, logger *slog.Logger) (*DispatchJob, error) {
	cmd, err := commands.NewDispatchOrdersCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}

	return &DispatchJob{
		handler:  handler,
		schedule: schedule,
		cmd:      cmd,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "dispatch_job"),
	}, nil
}

// Start schedules the dispatch rounds.
func (j *DispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule)
	return nil
}

// Run executes a single dispatch round.
func (j *DispatchJob) Run() {
	ctx := context.Background()

	if err := j.handler.Handle(ctx, j.cmd); err != nil {
		// nothing pending and nobody free are normal idle rounds
		if !errors.Is(err, commands.ErrNoOrderFound) && !errors.Is(err, commands.ErrNoFreeRidersFound) {
			j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err)
		}
	}
}

// Stop stops scheduling and waits for a running round to finish.
func (j *DispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
