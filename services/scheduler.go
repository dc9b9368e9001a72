package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// TickScheduler runs EventService.Tick periodically.
type TickScheduler struct {
	events    EventService
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
	scheduler gocron.Scheduler
}

func NewTickScheduler(events EventService, interval time.Duration, logger *slog.Logger) *TickScheduler {
	return &TickScheduler{
		events:   events,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs a tick immediately and then every interval until Stop is called
// or ctx is cancelled. Overlapping runs are skipped.
func (t *TickScheduler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(t.interval),
		gocron.NewTask(func() {
			t.RunOnce(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule tick job: %w", err)
	}

	sched.Start()
	t.scheduler = sched
	t.logger.Info("event tick scheduler started", slog.Duration("interval", t.interval))
	return nil
}

// RunOnce performs a single tick and logs its outcome.
func (t *TickScheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	transitions, err := t.events.Tick(ctx, t.now())
	if err != nil {
		t.logger.Error("scheduler: tick failed", slog.Any("error", err))
		return
	}
	if len(transitions) > 0 {
		t.logger.Info("scheduler: tick applied transitions", slog.Int("count", len(transitions)))
	}
}

func (t *TickScheduler) Stop() error {
	if t.scheduler == nil {
		return nil
	}
	if err := t.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	t.logger.Info("event tick scheduler stopped")
	return nil
}
