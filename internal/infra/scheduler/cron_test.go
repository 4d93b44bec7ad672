package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeps struct {
	expire, reminders, practical int
	err                          error
}

func (c *countingSweeps) ExpireDue(context.Context) (*commands.ExpireReport, error) {
	c.expire++
	return &commands.ExpireReport{}, c.err
}

func (c *countingSweeps) SendExpiryReminders(context.Context) (*commands.ReminderReport, error) {
	c.reminders++
	return &commands.ReminderReport{}, c.err
}

func (c *countingSweeps) SendPracticalReminders(context.Context) (*commands.ReminderReport, error) {
	c.practical++
	panic("template missing")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	cfg := config.NewTestConfig().Scheduler
	cfg.TimeZone = "Europe/Berlin"

	t.Run("registers three jobs in the configured zone", func(t *testing.T) {
		s, err := New(cfg, &countingSweeps{}, testLogger())
		require.NoError(t, err)

		entries := s.Entries()
		require.Len(t, entries, 3)

		berlin, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)
		from := time.Date(2025, 3, 1, 12, 0, 0, 0, berlin)
		assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, berlin), entries[0].Schedule.Next(from))
		assert.Equal(t, time.Date(2025, 3, 2, 9, 0, 0, 0, berlin), entries[1].Schedule.Next(from))
		assert.Equal(t, time.Date(2025, 3, 2, 8, 0, 0, 0, berlin), entries[2].Schedule.Next(from))
	})

	t.Run("invalid spec", func(t *testing.T) {
		bad := cfg
		bad.ExpireSpec = "every midnight"
		_, err := New(bad, &countingSweeps{}, testLogger())
		assert.Error(t, err)
	})

	t.Run("unknown time zone", func(t *testing.T) {
		bad := cfg
		bad.TimeZone = "Mars/Olympus"
		_, err := New(bad, &countingSweeps{}, testLogger())
		assert.Error(t, err)
	})
}

func TestWrap(t *testing.T) {
	sweeps := &countingSweeps{err: errors.New("db down")}
	s, err := New(config.NewTestConfig().Scheduler, sweeps, testLogger())
	require.NoError(t, err)

	for _, e := range s.Entries() {
		assert.NotPanics(t, e.Job.Run)
	}
	assert.Equal(t, 1, sweeps.expire)
	assert.Equal(t, 1, sweeps.reminders)
	assert.Equal(t, 1, sweeps.practical)
}
