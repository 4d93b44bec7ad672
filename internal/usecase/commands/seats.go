package commands

import (
	"context"
	"log/slog"

	"course-checkout/internal/domain/booking"
	"course-checkout/internal/domain/order"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type CancelParticipantResult struct {
	OrderNumber string
	// Cancelled is false when the participant was already cancelled.
	Cancelled bool
}

type ParticipantCommands interface {
	CancelParticipant(ctx context.Context, orderNumber string) (*CancelParticipantResult, error)
}

// SeatInventory books participants and moves the per-slot seat counters.
// Counters only change through single-statement updates in the store.
type SeatInventory struct {
	uow    shared.UnitOfWork
	events shared.EventPublisher
	clock  clock.Clock
	logger *slog.Logger
}

func NewSeatInventory(uow shared.UnitOfWork, events shared.EventPublisher, clk clock.Clock, logger *slog.Logger) *SeatInventory {
	return &SeatInventory{
		uow:    uow,
		events: events,
		clock:  clk,
		logger: logger,
	}
}

// BookParticipant creates the participant for a paid practical order and takes
// one seat. Calling it again for the same order returns the existing
// participant and leaves the counter alone. ErrAlreadyBooked means the buyer
// holds the slot through another order; nothing was written.
func (s *SeatInventory) BookParticipant(ctx context.Context, tx shared.Tx, o *order.Order) (*booking.Participant, error) {
	details := o.Practical()
	if details == nil {
		return nil, errs.Newf("order %s has no practical details", o.Number())
	}

	existing, err := tx.Participants().FindByOrderID(ctx, tx.DB(), o.ID())
	if err == nil {
		return existing, nil
	}
	if !errs.Is(err, shared.ErrRecordNotFound) {
		return nil, err
	}

	p, err := booking.NewParticipant(booking.NewParticipantParams{
		OrderID:         o.ID(),
		OrderNumber:     o.Number(),
		UserID:          o.UserID(),
		OfferingID:      details.OfferingID,
		DateID:          details.DateID,
		WithPlasticCard: details.WithPlasticCard,
		Now:             s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	inserted, err := tx.Participants().Insert(ctx, tx.DB(), p)
	if err != nil {
		return nil, err
	}
	if !inserted {
		if existing, err := tx.Participants().FindByOrderID(ctx, tx.DB(), o.ID()); err == nil {
			return existing, nil
		}
		return nil, errs.Mark(errs.Newf("order %s: buyer %s already holds a seat on date %s",
			o.Number(), o.UserID(), details.DateID), ErrAlreadyBooked)
	}

	if err := s.takeSeat(ctx, tx, o.Number(), details.OfferingID, details.DateID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SeatInventory) takeSeat(ctx context.Context, tx shared.Tx, orderNumber string, offeringID, dateID uuid.UUID) error {
	change, err := tx.Seats().Decrement(ctx, tx.DB(), offeringID, dateID)
	if err != nil {
		return err
	}
	switch change {
	case shared.SeatAtFloor:
		s.logger.Warn("no seats left on date slot, booking kept",
			"order_number", orderNumber,
			"offering_id", offeringID,
			"date_id", dateID)
	case shared.SeatSlotMissing:
		s.logger.Error("date slot missing while taking a seat",
			"order_number", orderNumber,
			"offering_id", offeringID,
			"date_id", dateID)
	}
	return nil
}

// CancelParticipant cancels the booking of orderNumber and gives the seat
// back. A second call is a no-op.
func (s *SeatInventory) CancelParticipant(ctx context.Context, orderNumber string) (*CancelParticipantResult, error) {
	var cancelled *booking.Participant

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled = nil
		p, err := tx.Participants().FindByOrderNumber(ctx, tx.DB(), orderNumber)
		if err != nil {
			if errs.Is(err, shared.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}
			return err
		}
		if !p.Cancel(s.clock.Now()) {
			return nil
		}
		ok, err := tx.Participants().SaveCancellation(ctx, tx.DB(), p)
		if err != nil || !ok {
			return err
		}

		change, err := tx.Seats().Increment(ctx, tx.DB(), p.OfferingID(), p.DateID())
		if err != nil {
			return err
		}
		if change == shared.SeatSlotMissing {
			s.logger.Error("date slot missing while restoring a seat",
				"order_number", orderNumber,
				"offering_id", p.OfferingID(),
				"date_id", p.DateID())
		}
		cancelled = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled == nil {
		s.logger.Info("participant already cancelled", "order_number", orderNumber)
		return &CancelParticipantResult{OrderNumber: orderNumber}, nil
	}

	s.logger.Info("participant cancelled, seat restored",
		"order_number", orderNumber,
		"offering_id", cancelled.OfferingID(),
		"date_id", cancelled.DateID())
	s.publish(ctx, cancelled)
	return &CancelParticipantResult{OrderNumber: orderNumber, Cancelled: true}, nil
}

func (s *SeatInventory) publish(ctx context.Context, p *booking.Participant) {
	ev := shared.OrderEvent{
		Type:        EventParticipantCancelled,
		OrderID:     p.OrderID(),
		OrderNumber: p.OrderNumber(),
		OrderType:   order.TypePractical.String(),
		Status:      string(p.Status()),
		UserID:      p.UserID(),
		OccurredAt:  s.clock.Now(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Error("failed to publish participant event", "order_number", p.OrderNumber(), "error", err.Error())
	}
}
