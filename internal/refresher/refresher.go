// Package refresher keeps the upstream caches warm on a cron schedule.
package refresher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/cache"
	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 30 * time.Second

// Job is one warm-up step. A failing job does not stop the others.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Sweeper is satisfied by every *cache.Cache.
type Sweeper = cache.Sweeper

type Refresher struct {
	schedule cron.Schedule
	expr     string
	jobs     []Job
	caches   []Sweeper
	logger   *slog.Logger
}

// New validates expr as a standard 5-field cron expression.
func New(expr string, jobs []Job, caches []Sweeper, logger *slog.Logger) (*Refresher, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse refresh schedule %q: %w", expr, err)
	}
	return &Refresher{
		schedule: sched,
		expr:     expr,
		jobs:     jobs,
		caches:   caches,
		logger:   logger.With("component", "refresher"),
	}, nil
}

// Start runs every job once, then on each cron tick until ctx is done.
// It returns after any in-flight run has finished.
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("refresher started", "schedule", r.expr, "jobs", len(r.jobs))
	r.RunOnce(ctx)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(r.schedule, cron.FuncJob(func() { r.RunOnce(ctx) }))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("refresher shut down")
}

// RunOnce runs all jobs sequentially, then sweeps dead cache entries.
func (r *Refresher) RunOnce(ctx context.Context) {
	for _, job := range r.jobs {
		if ctx.Err() != nil {
			return
		}
		r.run(ctx, job)
	}

	swept := 0
	for _, c := range r.caches {
		swept += c.Sweep()
	}
	if swept > 0 {
		r.logger.Debug("swept cache entries", "count", swept)
	}
}

func (r *Refresher) run(ctx context.Context, job Job) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	metrics.RefresherRunsTotal.WithLabelValues(job.Name, metrics.Outcome(err)).Inc()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		r.logger.Warn("refresh job failed", "job", job.Name, "error", err)
		return
	}
	r.logger.Debug("refresh job done", "job", job.Name, "duration", time.Since(start))
}
