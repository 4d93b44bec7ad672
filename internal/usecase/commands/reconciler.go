package commands

import (
	"context"
	"log/slog"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

type ReconcileOutcome string

const (
	OutcomeApplied          ReconcileOutcome = "applied"
	OutcomeAlreadyProcessed ReconcileOutcome = "already_processed"
	OutcomeIgnored          ReconcileOutcome = "ignored"
	OutcomeOrderNotFound    ReconcileOutcome = "order_not_found"
)

// PaymentRef carries every correlation key an event may hold. Any subset can
// be empty.
type PaymentRef struct {
	EventID         string
	OrderNumber     string
	SessionID       string
	PaymentIntentID string
}

type CancelReason string

const (
	CancelPaymentFailed CancelReason = "payment_failed"
	CancelRefunded      CancelReason = "refunded"
)

type PaymentReconciler interface {
	ConfirmPayment(ctx context.Context, ref PaymentRef) (ReconcileOutcome, error)
	CancelPayment(ctx context.Context, ref PaymentRef, reason CancelReason) (ReconcileOutcome, error)
}

type reconcilerImpl struct {
	uow          shared.UnitOfWork
	entitlements *EntitlementManager
	seats        *SeatInventory
	fulfilment   *Fulfilment
	clock        clock.Clock
	accessWindow time.Duration
	logger       *slog.Logger
}

func NewPaymentReconciler(
	uow shared.UnitOfWork,
	entitlements *EntitlementManager,
	seats *SeatInventory,
	fulfilment *Fulfilment,
	clk clock.Clock,
	accessWindow time.Duration,
	logger *slog.Logger,
) PaymentReconciler {
	return &reconcilerImpl{
		uow:          uow,
		entitlements: entitlements,
		seats:        seats,
		fulfilment:   fulfilment,
		clock:        clk,
		accessWindow: accessWindow,
		logger:       logger,
	}
}

// ConfirmPayment moves the order from pending to paid and grants access in the
// same transaction. The status update is a compare-and-set on "pending", so of
// any number of concurrent or repeated deliveries exactly one applies it; only
// that one runs the side effects.
func (r *reconcilerImpl) ConfirmPayment(ctx context.Context, ref PaymentRef) (ReconcileOutcome, error) {
	ctx = context.WithoutCancel(ctx)
	log := r.logger.With("event_id", ref.EventID, "order_number", ref.OrderNumber, "session_id", ref.SessionID)

	var (
		paid      *order.Order
		outcome   ReconcileOutcome
		duplicate bool
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		paid, outcome, duplicate = nil, OutcomeAlreadyProcessed, false

		o, err := locateOrder(ctx, tx, byNumber(ref.OrderNumber), bySession(ref.SessionID), byIntent(ref.PaymentIntentID))
		if err != nil {
			if errs.Is(err, ErrOrderNotFound) {
				outcome = OutcomeOrderNotFound
				return nil
			}
			return err
		}

		switch o.Status() {
		case order.StatusPending:
		case order.StatusPaid:
			return nil
		default:
			log.Error("payment confirmed for an order that is no longer pending, needs manual review",
				"order_number", o.Number(),
				"order_status", o.Status().String())
			outcome = OutcomeIgnored
			return nil
		}

		if err := o.MarkPaid(r.clock.Now(), ref.PaymentIntentID, r.accessWindow); err != nil {
			return err
		}
		won, err := tx.Orders().SaveTransition(ctx, tx.DB(), o, order.StatusPending)
		if err != nil {
			return err
		}
		if !won {
			return nil
		}

		if err := r.grantAccess(ctx, tx, o); err != nil {
			if !errs.Is(err, ErrAlreadyBooked) {
				return err
			}
			duplicate = true
		}
		paid, outcome = o, OutcomeApplied
		return nil
	})
	if err != nil {
		log.Error("failed to confirm payment", "error", err.Error())
		return "", err
	}

	switch outcome {
	case OutcomeOrderNotFound:
		log.Warn("paid event for unknown order", "payment_intent_id", ref.PaymentIntentID)
	case OutcomeAlreadyProcessed:
		log.Info("paid event already applied")
	case OutcomeApplied:
		if duplicate {
			log.Error("order paid for a slot the buyer already holds, needs manual refund review",
				"order_number", paid.Number(),
				"user_id", paid.UserID())
			r.fulfilment.AfterDuplicateBooking(ctx, paid)
			break
		}
		log.Info("order paid", "order_number", paid.Number(), "order_type", paid.Type().String())
		r.fulfilment.AfterPaid(ctx, paid)
	}
	return outcome, nil
}

func (r *reconcilerImpl) grantAccess(ctx context.Context, tx shared.Tx, o *order.Order) error {
	switch o.Type() {
	case order.TypeOnline:
		return r.entitlements.GrantOnlineAccess(ctx, tx, o)
	case order.TypePractical:
		_, err := r.seats.BookParticipant(ctx, tx, o)
		return err
	default:
		return errs.Newf("order %s has unknown type %q", o.Number(), o.Type())
	}
}

// CancelPayment flips the order to cancelled. A failed payment only cancels a
// pending order; a full refund cancels a pending or paid one. Entitlements and
// seats are left as they are.
func (r *reconcilerImpl) CancelPayment(ctx context.Context, ref PaymentRef, reason CancelReason) (ReconcileOutcome, error) {
	ctx = context.WithoutCancel(ctx)
	log := r.logger.With("event_id", ref.EventID, "order_number", ref.OrderNumber, "payment_intent_id", ref.PaymentIntentID, "reason", string(reason))

	var (
		cancelled *order.Order
		outcome   ReconcileOutcome
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled, outcome = nil, OutcomeAlreadyProcessed

		// A lost compare-and-set means the status moved under us; re-read and
		// decide again on the new status.
		for attempt := 0; attempt < 3; attempt++ {
			o, err := locateOrder(ctx, tx, byNumber(ref.OrderNumber), byIntent(ref.PaymentIntentID), bySession(ref.SessionID))
			if err != nil {
				if errs.Is(err, ErrOrderNotFound) {
					outcome = OutcomeOrderNotFound
					return nil
				}
				return err
			}

			from := o.Status()
			if from == order.StatusCancelled {
				outcome = OutcomeAlreadyProcessed
				return nil
			}
			if !cancellable(from, reason) {
				outcome = OutcomeIgnored
				return nil
			}
			if err := o.Cancel(r.clock.Now()); err != nil {
				return err
			}
			won, err := tx.Orders().SaveTransition(ctx, tx.DB(), o, from)
			if err != nil {
				return err
			}
			if won {
				cancelled, outcome = o, OutcomeApplied
				return nil
			}
		}
		return errs.Newf("order status kept changing while cancelling %s", ref.OrderNumber)
	})
	if err != nil {
		log.Error("failed to cancel order", "error", err.Error())
		return "", err
	}

	switch outcome {
	case OutcomeOrderNotFound:
		log.Warn("cancel event for unknown order")
	case OutcomeIgnored:
		log.Info("cancel event does not apply to current order status")
	case OutcomeAlreadyProcessed:
		log.Info("order already cancelled")
	case OutcomeApplied:
		log.Info("order cancelled", "order_number", cancelled.Number())
		r.fulfilment.AfterCancelled(ctx, cancelled)
	}
	return outcome, nil
}

func cancellable(from order.Status, reason CancelReason) bool {
	switch reason {
	case CancelPaymentFailed:
		return from == order.StatusPending
	case CancelRefunded:
		return from == order.StatusPending || from == order.StatusPaid
	default:
		return false
	}
}

type orderKeyKind int

const (
	keyOrderNumber orderKeyKind = iota
	keySession
	keyPaymentIntent
)

type orderKey struct {
	kind  orderKeyKind
	value string
}

func byNumber(v string) orderKey  { return orderKey{kind: keyOrderNumber, value: v} }
func bySession(v string) orderKey { return orderKey{kind: keySession, value: v} }
func byIntent(v string) orderKey  { return orderKey{kind: keyPaymentIntent, value: v} }

// locateOrder tries keys in order, skipping empty ones. The order number is
// tried first by callers since the session id may not be stored yet when the
// webhook outruns checkout.
func locateOrder(ctx context.Context, tx shared.Tx, keys ...orderKey) (*order.Order, error) {
	for _, k := range keys {
		if k.value == "" {
			continue
		}
		var (
			o   *order.Order
			err error
		)
		switch k.kind {
		case keyOrderNumber:
			o, err = tx.Orders().FindByNumber(ctx, tx.DB(), k.value)
		case keySession:
			o, err = tx.Orders().FindBySessionID(ctx, tx.DB(), k.value)
		case keyPaymentIntent:
			o, err = tx.Orders().FindByPaymentIntentID(ctx, tx.DB(), k.value)
		}
		if err == nil {
			return o, nil
		}
		if !errs.Is(err, shared.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, ErrOrderNotFound
}
