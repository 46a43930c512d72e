package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/infrastructure/metrics"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// CronJobTimeout bounds a single job execution.
const CronJobTimeout = 5 * time.Minute

// TokenRefresher renews platform tokens close to expiry.
type TokenRefresher interface {
	RefreshExpiringTikTok(ctx context.Context) (int, error)
}

type Crontab struct {
	ctab      *crontab.Crontab
	refresher TokenRefresher
	schedule  string
	log       zerolog.Logger
}

// NewCrontab schedules the TikTok refresh on schedule. An empty schedule disables it.
func NewCrontab(refresher TokenRefresher, schedule string, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:      crontab.New(),
		refresher: refresher,
		schedule:  schedule,
		log:       log.With().Str("component", "crontab").Logger(),
	}
}

// Run registers the jobs and blocks until ctx is done.
func (c *Crontab) Run(ctx context.Context) error {
	if c.schedule != "" {
		// execute once on server start
		c.refreshTikTok(ctx)

		if err := c.ctab.AddJob(c.schedule, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.refreshTikTok(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add tiktok refresh job")
		}
		c.log.Info().Str("schedule", c.schedule).Msg("tiktok token refresh scheduled")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) refreshTikTok(ctx context.Context) {
	n, err := c.refresher.RefreshExpiringTikTok(ctx)
	metrics.RecordTokenRefresh("tiktok", err == nil)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to refresh tiktok tokens")
		return
	}
	if n > 0 {
		c.log.Info().Int("refreshed", n).Msg("refreshed tiktok tokens")
	}
}
