package executors

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"
)

// Job is one scheduled unit of work. The context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context) error

// NewScheduler registers job under spec. Overlapping runs are skipped and a
// panicking run is recovered so the schedule keeps going.
func NewScheduler(ctx context.Context, spec, name string, job Job) (*cron.Cron, cron.EntryID, error) {
	cronLog := cron.PrintfLogger(logger.WithField("scheduler", name))
	c := cron.New(cron.WithChain(
		cron.Recover(cronLog),
		cron.SkipIfStillRunning(cronLog),
	))

	id, err := c.AddFunc(spec, func() { runJob(ctx, name, job) })
	if err != nil {
		return nil, 0, fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	return c, id, nil
}

// StartSchedule runs job on the configured schedule until ctx is done.
func StartSchedule(ctx context.Context, cfg Config, name string, job Job) error {
	c, id, err := NewScheduler(ctx, cfg.Schedule, name, job)
	if err != nil {
		return err
	}

	if cfg.RunOnStart {
		runJob(ctx, name, job)
	}

	c.Start()
	logger.WithFields(logger.Fields{
		"job":      name,
		"schedule": cfg.Schedule,
		"next":     c.Entry(id).Next,
	}).Info("scheduler started")

	<-ctx.Done()
	// Wait for a running job to finish.
	<-c.Stop().Done()
	logger.WithField("job", name).Info("scheduler stopped")
	return nil
}

func runJob(ctx context.Context, name string, job Job) {
	if ctx.Err() != nil {
		return
	}
	log := logger.WithField("job", name)
	log.Info("job tick")
	if err := job(ctx); err != nil {
		log.WithError(err).Error("job failed")
	}
}
