package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule is used when no refresh schedule is configured.
const DefaultSchedule = "@every 30s"

// Refresher reloads the entity cache from the upstream API.
type Refresher interface {
	RefreshCache(ctx context.Context) error
}

// CacheRefresher periodically rebuilds the order and pipeline cache.
type CacheRefresher struct {
	facade   Refresher
	schedule string
	logger   *slog.Logger

	cron   *cron.Cron
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCacheRefresher constructs the refresher for the given cron schedule.
func NewCacheRefresher(facade Refresher, schedule string, logger *slog.Logger) *CacheRefresher {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &CacheRefresher{facade: facade, schedule: schedule, logger: logger}
}

// Start runs one refresh immediately and schedules the rest. The first run
// and the scheduled ones share one job, so overlapping runs are skipped.
func (r *CacheRefresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cronLogger := slogCronLogger{logger: r.logger}
	job := cron.NewChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)).
		Then(cron.FuncJob(func() { r.refresh(runCtx) }))

	c := cron.New(cron.WithLogger(cronLogger))
	if _, err := c.AddJob(r.schedule, job); err != nil {
		cancel()
		return fmt.Errorf("schedule cache refresh %q: %w", r.schedule, err)
	}

	r.cancel = cancel
	r.cron = c
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		job.Run()
	}()
	c.Start()
	return nil
}

// Stop cancels in-flight refreshes and waits for them to return.
func (r *CacheRefresher) Stop() {
	r.mu.Lock()
	c, cancel := r.cron, r.cancel
	r.cron, r.cancel = nil, nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c != nil {
		<-c.Stop().Done()
	}
	r.wg.Wait()
}

func (r *CacheRefresher) refresh(ctx context.Context) {
	if err := r.facade.RefreshCache(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Error("cache refresh failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Debug("cache refreshed")
}

type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, slog.String("error", err.Error()))...)
}
