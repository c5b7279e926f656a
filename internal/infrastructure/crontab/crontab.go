package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"creator-api/internal/config"
	"creator-api/internal/domain/user"
	"creator-api/internal/infrastructure/logger"
	"creator-api/internal/infrastructure/metrics"
	"creator-api/internal/utils/platformerrors"
)

const (
	DefaultDailyResetSchedule = "0 0 * * *"
	CronJobTimeout            = 5 * time.Minute
)

type Crontab struct {
	ctab        *crontab.Crontab
	userService *user.Service
	cfg         *config.Config
}

func NewCrontab(cfg *config.Config, userService *user.Service) *Crontab {
	return &Crontab{
		ctab:        crontab.New(),
		userService: userService,
		cfg:         cfg,
	}
}

// Run schedules the daily quota reset and blocks until ctx is done.
// The scheduler ticks in the process time zone; deployments run in UTC.
func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	if c.cfg != nil && !c.cfg.DailyResetEnabled {
		log.Warn().Msg("daily generation reset disabled")
		<-ctx.Done()
		return nil
	}

	schedule := DefaultDailyResetSchedule
	if c.cfg != nil && c.cfg.DailyResetCron != "" {
		schedule = c.cfg.DailyResetCron
	}

	if err := c.ctab.AddJob(schedule, func() {
		jobCtx, cancel := context.WithTimeout(ctx, CronJobTimeout)
		defer cancel()
		c.ResetDailyGenerations(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add daily reset job")
	}
	log.Info().Str("schedule", schedule).Msg("daily generation reset scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// ResetDailyGenerations zeroes every user's daily counter once.
func (c *Crontab) ResetDailyGenerations(ctx context.Context) {
	log := logger.GetLogger()
	start := time.Now()

	n, err := c.userService.ResetDaily(ctx)
	metrics.RecordDailyReset(err == nil)
	if err != nil {
		log.Error().Err(err).Msg("daily generation reset failed")
		return
	}
	log.Info().
		Int64("users", n).
		Dur("duration", time.Since(start)).
		Msg("daily generation counters reset")
}
