package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/backoffice/pkg/auth/session"
	"github.com/vendaflow/backoffice/pkg/db/dbtest"
	"github.com/vendaflow/backoffice/pkg/db/models"
	"github.com/vendaflow/backoffice/pkg/logger"
	"github.com/vendaflow/backoffice/pkg/metrics"
)

type fakeSweeper struct {
	deleted int64
	err     error
	cutoff  time.Time
}

func (f *fakeSweeper) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	f.cutoff = now
	return f.deleted, f.err
}

func TestSessionSweepJobReportsDeletedRows(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewCronJobMetrics(reg)
	sweeper := &fakeSweeper{deleted: 4}

	job, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logger.Nop(), Sweeper: sweeper, Metrics: m})
	require.NoError(t, err)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	job.(*sessionSweepJob).now = func() time.Time { return now }

	require.NoError(t, job.Run(context.Background()))
	assert.True(t, sweeper.cutoff.Equal(now))
	assert.Equal(t, "session-sweep", job.Name())

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestSessionSweepJobPropagatesErrors(t *testing.T) {
	job, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logger.Nop(), Sweeper: &fakeSweeper{err: errors.New("db down")}})
	require.NoError(t, err)
	assert.Error(t, job.Run(context.Background()))
}

func TestSessionSweepDeletesOnlyExpiredRows(t *testing.T) {
	client := dbtest.Open(t)
	conn := client.DB()
	user := models.User{TenantID: 1, Username: "caixa", PasswordHash: "x", IsActive: true}
	dbtest.MustCreate(t, conn, &user)

	now := time.Now().UTC()
	rows := []models.UserSession{
		{UserID: user.ID, SessionToken: "expired", ExpiresAt: now.Add(-time.Minute)},
		{UserID: user.ID, SessionToken: "live", ExpiresAt: now.Add(time.Hour)},
	}
	for i := range rows {
		dbtest.MustCreate(t, conn, &rows[i])
	}

	manager, err := session.NewManager(session.NewStore(conn), 24*time.Hour)
	require.NoError(t, err)
	job, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logger.Nop(), Sweeper: manager})
	require.NoError(t, err)
	require.NoError(t, job.Run(context.Background()))

	var tokens []string
	require.NoError(t, conn.Model(&models.UserSession{}).Pluck("session_token", &tokens).Error)
	assert.Equal(t, []string{"live"}, tokens)
}
