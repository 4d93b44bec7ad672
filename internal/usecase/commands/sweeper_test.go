package commands

import (
	"context"
	"testing"
	"time"

	"course-checkout/internal/domain/entitlement"
	"course-checkout/internal/domain/order"
	"course-checkout/internal/testutil/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_ExpireDue(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		offset  time.Duration
		expired bool
	}{
		{name: "one second before expiry", offset: -time.Second},
		{name: "exactly at expiry", offset: 0},
		{name: "one second after expiry", offset: time.Second, expired: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			o := h.pendingOnline(t)
			require.Equal(t, OutcomeApplied, h.confirm(t, o))
			paid := h.store.order(o.Number())
			h.clock.Set(paid.ExpiresAt().Add(tc.offset))

			report, err := h.sweeper.ExpireDue(ctx)
			require.NoError(t, err)

			e := h.store.entitlementOf(o.UserID(), o.CourseIDs()[0])
			if tc.expired {
				assert.Equal(t, 1, report.Entitlements)
				assert.Equal(t, []string{o.Number()}, report.Orders)
				assert.Equal(t, entitlement.StatusExpired, e.Status())
				assert.Equal(t, order.StatusExpired, h.store.order(o.Number()).Status())
				assert.Contains(t, h.events.types(), EventOrderExpired)
				return
			}
			assert.Zero(t, report.Entitlements)
			assert.Empty(t, report.Orders)
			assert.Equal(t, entitlement.StatusActive, e.Status())
			assert.Equal(t, order.StatusPaid, h.store.order(o.Number()).Status())
		})
	}

	t.Run("practical orders never expire", func(t *testing.T) {
		h := newHarness(t)
		o, _ := h.pendingPractical(t, 3)
		require.Equal(t, OutcomeApplied, h.confirm(t, o))
		h.clock.Add(365 * 24 * time.Hour)

		report, err := h.sweeper.ExpireDue(ctx)

		require.NoError(t, err)
		assert.Empty(t, report.Orders)
		assert.Equal(t, order.StatusPaid, h.store.order(o.Number()).Status())
	})

	t.Run("second run finds nothing", func(t *testing.T) {
		h := newHarness(t)
		o := h.pendingOnline(t)
		require.Equal(t, OutcomeApplied, h.confirm(t, o))
		h.clock.Add(testAccessWindow + time.Minute)

		_, err := h.sweeper.ExpireDue(ctx)
		require.NoError(t, err)
		report, err := h.sweeper.ExpireDue(ctx)

		require.NoError(t, err)
		assert.Zero(t, report.Entitlements)
		assert.Empty(t, report.Orders)
	})
}

func TestSweeper_SendExpiryReminders(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	u := builder.NewUserBuilder().MustBuild(t)
	h.store.putUser(u)
	tx := &memTx{s: h.store}

	inWindow := h.store.addCourse("Online first aid course", 4900)
	later := h.store.addCourse("Refresher course", 2900)
	now := builder.BaseTime
	require.NoError(t, h.entitlements.Assign(ctx, tx, u.ID(), inWindow, "ORD-1", now.Add(-20*24*time.Hour), now.Add(3*24*time.Hour)))
	require.NoError(t, h.entitlements.Assign(ctx, tx, u.ID(), later, "ORD-2", now, now.Add(20*24*time.Hour)))

	report, err := h.sweeper.SendExpiryReminders(ctx)
	require.NoError(t, err)

	assert.Equal(t, ReminderReport{Matched: 1, Sent: 1}, *report)
	require.Len(t, h.notifier.reminders, 1)
	r := h.notifier.reminders[0]
	assert.Equal(t, "Online first aid course", r.CourseTitle)
	assert.Equal(t, "anna@example.com", r.Email)
	assert.Equal(t, "Anna", r.FirstName)

	// Nothing marks a reminder as sent.
	report, err = h.sweeper.SendExpiryReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 2, h.notifier.count("expiry"))
}

func TestSweeper_SendPracticalReminders(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	u := builder.NewUserBuilder().MustBuild(t)
	h.store.putUser(u)

	book := func(startsAt time.Time) *order.Order {
		offeringID, dateID := h.store.addOffering(startsAt, 5)
		o := builder.NewPracticalOrderBuilder().With(func(b *builder.OrderBuilder) {
			b.UserID = u.ID()
			b.Practical.OfferingID = offeringID
			b.Practical.DateID = dateID
		}).MustBuild(t)
		h.store.putOrder(o)
		require.Equal(t, OutcomeApplied, h.confirm(t, o))
		return o
	}

	// BaseTime is 2025-03-01 10:00 UTC, so tomorrow is 2025-03-02.
	tomorrowMorning := book(time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC))
	book(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC))
	book(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	cancelled := book(time.Date(2025, 3, 2, 14, 0, 0, 0, time.UTC))
	_, err := h.seats.CancelParticipant(ctx, cancelled.Number())
	require.NoError(t, err)

	report, err := h.sweeper.SendPracticalReminders(ctx)
	require.NoError(t, err)

	assert.Equal(t, ReminderReport{Matched: 1, Sent: 1}, *report)
	require.Len(t, h.notifier.practical, 1)
	assert.Equal(t, tomorrowMorning.Number(), h.notifier.practical[0].OrderNumber)
	assert.Equal(t, "Training Center Mitte", h.notifier.practical[0].LocationName)
}

func TestNextDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on 31 March is already 1 April in Berlin.
	from, to := nextDay(time.Date(2025, 3, 31, 23, 30, 0, 0, time.UTC), berlin)

	assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, berlin), from)
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, berlin), to)
}
