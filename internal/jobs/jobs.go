// Package jobs runs the periodic background work of the API process on a
// cron schedule: refreshing the publication gauges exported on /metrics and
// purging expired idempotency records.
//
// Published state is derived from the clock, so the gauges drift as
// scheduled publications pass their date; the refresher recomputes them with
// the same windows the listing endpoint uses.
package jobs

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	scheduledGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "publications_scheduled",
		Help: "Publications dated after the last refresh.",
	})
	publishedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "publications_published",
		Help: "Publications dated before the last refresh.",
	})
	idemPurged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idempotency_records_purged_total",
		Help: "Expired idempotency records deleted by the purge job.",
	})
	lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jobs_stats_last_success_timestamp_seconds",
		Help: "Unix time of the last successful stats refresh.",
	})
	runErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobs_errors_total",
		Help: "Background job failures by step.",
	}, []string{"step"})
)

func init() {
	prometheus.MustRegister(scheduledGauge, publishedGauge, idemPurged, lastRun, runErrors)
}

// PublicationCounter reports scheduled and published totals as of now.
type PublicationCounter interface {
	Counts(ctx context.Context) (scheduled, published int64, err error)
}

// IdempotencyPurger deletes idempotency records that expired before now.
type IdempotencyPurger interface {
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// StatsRefresher is a cron.Job. Purger may be nil.
type StatsRefresher struct {
	Counter PublicationCounter
	Purger  IdempotencyPurger
	Timeout time.Duration
	Now     func() time.Time
}

// Run implements cron.Job.
func (r *StatsRefresher) Run() {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = r.RunOnce(ctx)
}

// RunOnce refreshes the gauges and purges idempotency records. The purge
// still runs when counting fails; the first error is returned.
func (r *StatsRefresher) RunOnce(ctx context.Context) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	lg := log.With().Str("job", "stats").Logger()

	var firstErr error
	scheduled, published, err := r.Counter.Counts(ctx)
	if err != nil {
		runErrors.WithLabelValues("counts").Inc()
		lg.Error().Err(err).Msg("publication counts failed")
		firstErr = err
	} else {
		scheduledGauge.Set(float64(scheduled))
		publishedGauge.Set(float64(published))
		lastRun.Set(float64(now().Unix()))
		lg.Debug().Int64("scheduled", scheduled).Int64("published", published).Msg("publication gauges refreshed")
	}

	if r.Purger != nil {
		n, err := r.Purger.Purge(ctx, now().UTC())
		if err != nil {
			runErrors.WithLabelValues("purge").Inc()
			lg.Error().Err(err).Msg("idempotency purge failed")
			if firstErr == nil {
				firstErr = err
			}
		} else if n > 0 {
			idemPurged.Add(float64(n))
			lg.Info().Int64("purged", n).Msg("expired idempotency records purged")
		}
	}
	return firstErr
}

// Start schedules job on spec (standard 5-field cron or a descriptor such as
// "@every 1m"), runs it once immediately and starts the scheduler. Stop the
// returned cron to end it; cron.Stop's context reports when running jobs
// have finished.
func Start(spec string, job cron.Job) (*cron.Cron, error) {
	lg := cronLogger{l: log.With().Str("component", "cron").Logger()}
	// The immediate run and the scheduled runs share one wrapper, so a panic
	// is recovered and runs never overlap.
	wrapped := cron.NewChain(cron.Recover(lg), cron.SkipIfStillRunning(cron.DiscardLogger)).Then(job)

	c := cron.New(cron.WithLogger(lg))
	if _, err := c.AddJob(spec, wrapped); err != nil {
		return nil, err
	}
	go wrapped.Run()
	c.Start()
	return c, nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
