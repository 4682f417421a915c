package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// SheetSyncJob periodically pushes standings of active games to Google Sheets.
type SheetSyncJob struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	standings StandingsService
	logger    Logger
}

func NewSheetSyncJob(interval time.Duration, standings StandingsService, logger Logger) *SheetSyncJob {
	return &SheetSyncJob{
		interval:  interval,
		standings: standings,
		logger:    logger,
	}
}

func (j *SheetSyncJob) Init() error {
	if j.interval <= 0 {
		return fmt.Errorf("sheet sync interval must be positive, got %s", j.interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(j.sync),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sheet sync: %w", err)
	}

	j.scheduler = sched
	return nil
}

func (j *SheetSyncJob) Run(ctx context.Context) {
	j.logger.Info("sheet sync scheduled every %s", j.interval)
	j.scheduler.Start()
}

func (j *SheetSyncJob) Stop() {
	if j.scheduler == nil {
		return
	}
	if err := j.scheduler.Shutdown(); err != nil {
		j.logger.Error("failed to stop scheduler: %v", err)
	}
}

func (j *SheetSyncJob) sync() {
	if err := j.standings.SyncAll(); err != nil {
		j.logger.Error("sheet sync failed: %v", err)
		return
	}
	j.logger.Debug("sheet sync finished")
}
