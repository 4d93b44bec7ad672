// Package scheduler runs the daily sweeps on cron schedules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds one run so a stuck store does not pile up runs.
const jobTimeout = 10 * time.Minute

type Scheduler struct {
	cron   *cron.Cron
	sweeps commands.SweepCommands
	logger *slog.Logger
}

func New(cfg config.SchedulerConfig, sweeps commands.SweepCommands, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "scheduler time zone %q", cfg.TimeZone)
	}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		sweeps: sweeps,
		logger: logger.With("component", "scheduler"),
	}

	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
	}{
		{name: "expire", spec: cfg.ExpireSpec, run: func(ctx context.Context) error {
			_, err := sweeps.ExpireDue(ctx)
			return err
		}},
		{name: "expiry_reminders", spec: cfg.ExpiryReminderSpec, run: func(ctx context.Context) error {
			_, err := sweeps.SendExpiryReminders(ctx)
			return err
		}},
		{name: "practical_reminders", spec: cfg.PracticalReminderSpec, run: func(ctx context.Context) error {
			_, err := sweeps.SendPracticalReminders(ctx)
			return err
		}},
	}
	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.spec, s.wrap(j.name, j.run)); err != nil {
			return nil, errs.Wrapf(err, "schedule %s with %q", j.name, j.spec)
		}
	}
	return s, nil
}

func (s *Scheduler) wrap(name string, run func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		started := time.Now()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("job panicked", "job", name, "panic", r)
			}
		}()
		if err := run(ctx); err != nil {
			s.logger.Error("job failed", "job", name, "error", err.Error(), "duration", time.Since(started))
			return
		}
		s.logger.Info("job finished", "job", name, "duration", time.Since(started))
	}
}

// Entries lists the registered jobs with their next run time.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
