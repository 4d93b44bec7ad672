package commands

import (
	"context"
	"log/slog"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/usecase/shared"
)

type ExpireReport struct {
	Entitlements int
	Orders       []string
}

type ReminderReport struct {
	Matched int
	Sent    int
}

type SweepCommands interface {
	// ExpireDue demotes active entitlements and paid online orders whose
	// expiresAt lies strictly before now.
	ExpireDue(ctx context.Context) (*ExpireReport, error)
	// SendExpiryReminders mails every entitlement expiring within the
	// lookahead. Nothing records that a reminder went out, so a second run
	// inside the same window mails again.
	SendExpiryReminders(ctx context.Context) (*ReminderReport, error)
	// SendPracticalReminders mails confirmed participants whose slot starts
	// on the next calendar day.
	SendPracticalReminders(ctx context.Context) (*ReminderReport, error)
}

type sweeperImpl struct {
	uow       shared.UnitOfWork
	notifier  shared.Notifier
	events    shared.EventPublisher
	lookahead time.Duration
	loc       *time.Location
	clock     clock.Clock
	logger    *slog.Logger
}

func NewSweeper(
	uow shared.UnitOfWork,
	notifier shared.Notifier,
	events shared.EventPublisher,
	lookahead time.Duration,
	loc *time.Location,
	clk clock.Clock,
	logger *slog.Logger,
) SweepCommands {
	if loc == nil {
		loc = time.UTC
	}
	return &sweeperImpl{
		uow:       uow,
		notifier:  notifier,
		events:    events,
		lookahead: lookahead,
		loc:       loc,
		clock:     clk,
		logger:    logger,
	}
}

func (s *sweeperImpl) ExpireDue(ctx context.Context) (*ExpireReport, error) {
	now := s.clock.Now()
	report := &ExpireReport{}

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		*report = ExpireReport{}
		expired, err := tx.Entitlements().ExpireDue(ctx, tx.DB(), now)
		if err != nil {
			return err
		}
		report.Entitlements = len(expired)

		report.Orders, err = tx.Orders().ExpireDueOnline(ctx, tx.DB(), now)
		return err
	})
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err.Error())
		return nil, err
	}

	for _, number := range report.Orders {
		ev := shared.OrderEvent{
			Type:        EventOrderExpired,
			OrderNumber: number,
			OrderType:   order.TypeOnline.String(),
			Status:      order.StatusExpired.String(),
			OccurredAt:  now,
		}
		if err := s.events.Publish(ctx, ev); err != nil {
			s.logger.Error("failed to publish expiry event", "order_number", number, "error", err.Error())
		}
	}

	s.logger.Info("expiry sweep finished", "entitlements_expired", report.Entitlements, "orders_expired", len(report.Orders))
	return report, nil
}

func (s *sweeperImpl) SendExpiryReminders(ctx context.Context) (*ReminderReport, error) {
	now := s.clock.Now()

	var due []shared.ExpiryReminder
	err := s.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.Entitlements().ListExpiringBetween(ctx, tx.DB(), now, now.Add(s.lookahead))
		return err
	})
	if err != nil {
		return nil, err
	}

	report := &ReminderReport{Matched: len(due)}
	for _, r := range due {
		if err := s.notifier.SendExpiryReminder(ctx, r); err != nil {
			s.logger.Error("failed to send expiry reminder",
				"order_number", r.OrderNumber,
				"user_id", r.UserID,
				"course_id", r.CourseID,
				"error", err.Error())
			continue
		}
		report.Sent++
	}
	s.logger.Info("expiry reminders sent", "matched", report.Matched, "sent", report.Sent)
	return report, nil
}

func (s *sweeperImpl) SendPracticalReminders(ctx context.Context) (*ReminderReport, error) {
	from, to := nextDay(s.clock.Now(), s.loc)

	var due []shared.PracticalReminder
	err := s.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.Participants().ListStartingBetween(ctx, tx.DB(), from, to)
		return err
	})
	if err != nil {
		return nil, err
	}

	report := &ReminderReport{Matched: len(due)}
	for _, r := range due {
		if err := s.notifier.SendPracticalReminder(ctx, r); err != nil {
			s.logger.Error("failed to send practical reminder", "order_number", r.OrderNumber, "error", err.Error())
			continue
		}
		report.Sent++
	}
	s.logger.Info("practical reminders sent", "matched", report.Matched, "sent", report.Sent, "day", from.Format(time.DateOnly))
	return report, nil
}

// nextDay returns [tomorrow 00:00, the day after 00:00) in loc.
func nextDay(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
