// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DispatchJob - offers pending orders to available riders, by default every five seconds
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager, err := jobs.NewJobManager(dispatchHandler, jobs.DispatchConfig{
//		Schedule:  "*/5 * * * * *",
//		BatchSize: 20,
//	}, logger)
//	if err != nil {
//		log.Fatal("Failed to create jobs:", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field.
//
// # Error Handling
//
// The dispatch job ignores idle rounds (no pending orders, no free riders) and
// logs every other error.
package jobs
