package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"graphql-crm/internal/config"
	"graphql-crm/internal/jobs"
	"graphql-crm/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cron host for the scheduled CRM jobs. Each job is a GraphQL client of the
// API; they share no state with the request path and report only to their
// own log files.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting CRM job scheduler",
		zap.String("endpoint", cfg.Jobs.Endpoint),
	)

	heartbeat := jobs.NewHeartbeat(cfg.Jobs.Endpoint, cfg.Jobs.HeartbeatLog, log)
	lowStock := jobs.NewLowStockTrigger(cfg.Jobs.Endpoint, cfg.Jobs.LowStockLog, log)
	reminders := jobs.NewReminderSweep(cfg.Jobs.Endpoint, cfg.Jobs.ReminderLog, cfg.Jobs.ReminderWindow, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()

	schedules := map[string]struct {
		spec string
		run  func(context.Context)
	}{
		"heartbeat":      {cfg.Jobs.HeartbeatSchedule, heartbeat.Run},
		"low-stock":      {cfg.Jobs.LowStockSchedule, lowStock.Run},
		"order-reminder": {cfg.Jobs.ReminderSchedule, reminders.Run},
	}

	for name, job := range schedules {
		run := job.run
		if _, err := c.AddFunc(job.spec, func() { run(ctx) }); err != nil {
			log.Fatal("Failed to schedule job",
				zap.String("job", name),
				zap.String("schedule", job.spec),
				zap.Error(err),
			)
		}
		log.Info("Scheduled job", zap.String("job", name), zap.String("schedule", job.spec))
	}

	c.Start()

	<-ctx.Done()
	log.Info("Shutting down job scheduler")

	// Let any in-flight tick finish before exiting
	<-c.Stop().Done()
	log.Info("Job scheduler stopped")
}
