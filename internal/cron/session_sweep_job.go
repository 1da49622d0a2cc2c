package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/vendaflow/backoffice/pkg/logger"
	"github.com/vendaflow/backoffice/pkg/metrics"
)

const sessionSweepJobName = "session-sweep"

type SessionSweepJobParams struct {
	Logger  *logger.Logger
	Sweeper sessionSweeper
	Metrics *metrics.CronJobMetrics
}

// sessionSweeper is satisfied by *session.Manager.
type sessionSweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

func NewSessionSweepJob(params SessionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sweeper == nil {
		return nil, fmt.Errorf("session sweeper required")
	}
	return &sessionSweepJob{
		logg:    params.Logger,
		sweeper: params.Sweeper,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

type sessionSweepJob struct {
	logg    *logger.Logger
	sweeper sessionSweeper
	metrics *metrics.CronJobMetrics
	now     func() time.Time
}

func (j *sessionSweepJob) Name() string { return sessionSweepJobName }

// Run deletes sessions whose expiry is at or before now.
func (j *sessionSweepJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	deleted, err := j.sweeper.SweepExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("session sweep: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddAffected(sessionSweepJobName, deleted)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       now,
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "session sweep complete")
	return nil
}
