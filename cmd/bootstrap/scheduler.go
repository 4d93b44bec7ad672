package bootstrap

import (
	"context"
	"log/slog"

	"course-checkout/internal/infra/scheduler"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(registerScheduler),
)

func NewScheduler(cfg config.Config, sweeps commands.SweepCommands, logger *slog.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New(cfg.Scheduler, sweeps, logger)
}

func registerScheduler(lc fx.Lifecycle, cfg config.Config, s *scheduler.Scheduler, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("scheduler disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
