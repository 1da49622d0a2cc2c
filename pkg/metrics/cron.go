package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "backoffice"

// CronJobMetrics records duration and outcome of scheduled jobs.
type CronJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	affected *prometheus.CounterVec
}

// NewCronJobMetrics registers the cron job metrics on reg. A nil registerer yields a no-op recorder.
func NewCronJobMetrics(reg prometheus.Registerer) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	m := &CronJobMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cron_job_duration_seconds",
			Help:      "Duration of cron jobs in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cron_job_success_total",
			Help:      "Successful cron job executions.",
		}, []string{"job"}),
		failure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cron_job_failure_total",
			Help:      "Failed cron job executions.",
		}, []string{"job"}),
		affected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cron_job_rows_affected_total",
			Help:      "Rows touched by cron jobs.",
		}, []string{"job"}),
	}
	reg.MustRegister(m.duration, m.success, m.failure, m.affected)
	return m
}

func (c *CronJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(jobLabel(job)).Observe(duration.Seconds())
}

func (c *CronJobMetrics) IncSuccess(job string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(jobLabel(job)).Inc()
}

func (c *CronJobMetrics) IncFailure(job string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(jobLabel(job)).Inc()
}

// AddAffected counts rows a job deleted or updated.
func (c *CronJobMetrics) AddAffected(job string, rows int64) {
	if c == nil || c.affected == nil || rows <= 0 {
		return
	}
	c.affected.WithLabelValues(jobLabel(job)).Add(float64(rows))
}

func jobLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
