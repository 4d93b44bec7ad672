package bootstrap

import (
	"time"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBusinessLocation,
	),
)

// NewBusinessLocation is the zone for calendar days in reminders and emails.
func NewBusinessLocation(cfg config.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Scheduler.TimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "load time zone %q", cfg.Scheduler.TimeZone)
	}
	return loc, nil
}
