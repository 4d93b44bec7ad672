package commands

import (
	"context"
	"fmt"
	"log/slog"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

// Order lifecycle event types.
const (
	EventOrderPaid            = "order.paid"
	EventOrderCancelled       = "order.cancelled"
	EventOrderExpired         = "order.expired"
	EventParticipantCancelled = "participant.cancelled"
	EventOrderDuplicateSeat   = "order.duplicate_booking"
)

type invoiceIssuer interface {
	Issue(ctx context.Context, o *order.Order) (order.Invoice, error)
}

// FulfilmentReport lists the side effects that failed; an empty report means
// everything went through.
type FulfilmentReport struct {
	Failed []string
}

func (r FulfilmentReport) OK() bool { return len(r.Failed) == 0 }

// Fulfilment runs the side effects that follow a committed order transition.
// Every step is isolated: its failure is logged and never reaches the caller.
type Fulfilment struct {
	invoices invoiceIssuer
	notifier shared.Notifier
	events   shared.EventPublisher
	clock    clock.Clock
	logger   *slog.Logger
}

func NewFulfilment(invoices *InvoiceIssuer, notifier shared.Notifier, events shared.EventPublisher, clk clock.Clock, logger *slog.Logger) *Fulfilment {
	return &Fulfilment{
		invoices: invoices,
		notifier: notifier,
		events:   events,
		clock:    clk,
		logger:   logger,
	}
}

func (f *Fulfilment) AfterPaid(ctx context.Context, o *order.Order) FulfilmentReport {
	var report FulfilmentReport
	f.step(ctx, &report, o, "invoice", func() error {
		_, err := f.invoices.Issue(ctx, o)
		return err
	})
	f.step(ctx, &report, o, "email", func() error {
		if o.Type() == order.TypePractical {
			return f.notifier.SendBookingConfirmation(ctx, o)
		}
		return f.notifier.SendPurchaseConfirmation(ctx, o)
	})
	f.step(ctx, &report, o, "event", func() error {
		return f.events.Publish(ctx, f.event(EventOrderPaid, o))
	})
	return report
}

// AfterDuplicateBooking handles a paid practical order whose buyer already
// holds the slot. No invoice or booking confirmation goes out; the event lets
// support pick the order up for a refund.
func (f *Fulfilment) AfterDuplicateBooking(ctx context.Context, o *order.Order) FulfilmentReport {
	var report FulfilmentReport
	f.step(ctx, &report, o, "event", func() error {
		return f.events.Publish(ctx, f.event(EventOrderDuplicateSeat, o))
	})
	return report
}

func (f *Fulfilment) AfterCancelled(ctx context.Context, o *order.Order) FulfilmentReport {
	var report FulfilmentReport
	f.step(ctx, &report, o, "event", func() error {
		return f.events.Publish(ctx, f.event(EventOrderCancelled, o))
	})
	return report
}

func (f *Fulfilment) step(ctx context.Context, report *FulfilmentReport, o *order.Order, name string, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errs.Newf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err == nil {
		return
	}
	report.Failed = append(report.Failed, name)
	f.logger.ErrorContext(ctx, fmt.Sprintf("best-effort %s step failed", name),
		"order_number", o.Number(),
		"order_status", o.Status().String(),
		"error", err.Error())
}

func (f *Fulfilment) event(kind string, o *order.Order) shared.OrderEvent {
	return shared.OrderEvent{
		Type:        kind,
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		OrderType:   o.Type().String(),
		Status:      o.Status().String(),
		UserID:      o.UserID(),
		TotalCents:  o.Total().Cents(),
		Currency:    o.Currency(),
		OccurredAt:  f.clock.Now(),
	}
}
