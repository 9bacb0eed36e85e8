package scheduler

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/restobook/restobook/internal/jobs"
	"github.com/restobook/restobook/internal/platform/config"
)

// Scheduler drives the recurring back-office jobs on cron schedules from
// the configuration. All schedules are interpreted in UTC.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func NewScheduler(cfg *config.Config, jobRunner *jobs.JobRunner, logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
	}

	if _, err := s.cron.AddFunc(cfg.LowStockSchedule, jobRunner.LowStockScan); err != nil {
		logger.Error("Failed to register low stock scan job",
			slog.String("schedule", cfg.LowStockSchedule), slog.String("error", err.Error()))
	}

	if _, err := s.cron.AddFunc(cfg.SalesSummarySchedule, jobRunner.DailySalesSummary); err != nil {
		logger.Error("Failed to register daily sales summary job",
			slog.String("schedule", cfg.SalesSummarySchedule), slog.String("error", err.Error()))
	}

	return s
}

// Start begins running the registered jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", slog.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}
