package commands

import (
	"context"
	"errors"
	"testing"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier hands out a fixed event, or an error for the "bad" signature.
type stubVerifier struct {
	event shared.PaymentEvent
}

func (v *stubVerifier) Verify(_ []byte, signature string) (*shared.PaymentEvent, error) {
	if signature == "bad" {
		return nil, errors.New("no signatures found matching the expected signature")
	}
	ev := v.event
	return &ev, nil
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		paid     bool
		event    func(o *order.Order) shared.PaymentEvent
		expected ReconcileOutcome
		status   order.Status
	}{
		{
			name: "paid session completes the order",
			event: func(o *order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_1", Kind: shared.EventSessionCompleted, OrderNumber: o.Number(), SessionID: "cs_1", SessionPaid: true}
			},
			expected: OutcomeApplied,
			status:   order.StatusPaid,
		},
		{
			name: "unpaid session waits for the payment event",
			event: func(o *order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_2", Kind: shared.EventSessionCompleted, OrderNumber: o.Number(), SessionID: "cs_1"}
			},
			expected: OutcomeIgnored,
			status:   order.StatusPending,
		},
		{
			name: "payment succeeded",
			event: func(o *order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_3", Kind: shared.EventPaymentSucceeded, OrderNumber: o.Number(), PaymentIntentID: "pi_1"}
			},
			expected: OutcomeApplied,
			status:   order.StatusPaid,
		},
		{
			name: "payment failed",
			event: func(o *order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_4", Kind: shared.EventPaymentFailed, OrderNumber: o.Number(), PaymentIntentID: "pi_1"}
			},
			expected: OutcomeApplied,
			status:   order.StatusCancelled,
		},
		{
			name: "partial refund keeps the order",
			paid: true,
			event: func(o *order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_5", Kind: shared.EventChargeRefunded, OrderNumber: o.Number()}
			},
			expected: OutcomeIgnored,
			status:   order.StatusPaid,
		},
		{
			name: "full refund cancels a paid order",
			paid: true,
			event: func(o *order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_6", Kind: shared.EventChargeRefunded, OrderNumber: o.Number(), FullyRefunded: true}
			},
			expected: OutcomeApplied,
			status:   order.StatusCancelled,
		},
		{
			name: "unhandled event type",
			event: func(o *order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_7", Type: "customer.created", Kind: shared.EventUnhandled}
			},
			expected: OutcomeIgnored,
			status:   order.StatusPending,
		},
		{
			name: "unknown order is acknowledged",
			event: func(*order.Order) shared.PaymentEvent {
				return shared.PaymentEvent{ID: "evt_8", Kind: shared.EventPaymentSucceeded, OrderNumber: "ORD-ELSEWHERE"}
			},
			expected: OutcomeOrderNotFound,
			status:   order.StatusPending,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			o := h.pendingOnline(t)
			if tc.paid {
				require.Equal(t, OutcomeApplied, h.confirm(t, o))
			}
			verifier := &stubVerifier{event: tc.event(o)}
			dispatcher := NewWebhookDispatcher(verifier, h.reconciler, discardLogger())

			res, err := dispatcher.HandleWebhook(ctx, []byte(`{}`), "t=1,v1=sig")

			require.NoError(t, err)
			assert.Equal(t, tc.expected, res.Outcome)
			assert.Equal(t, verifier.event.ID, res.EventID)
			assert.Equal(t, tc.status, h.store.order(o.Number()).Status())
		})
	}

	t.Run("bad signature is rejected", func(t *testing.T) {
		h := newHarness(t)
		dispatcher := NewWebhookDispatcher(&stubVerifier{}, h.reconciler, discardLogger())

		_, err := dispatcher.HandleWebhook(ctx, []byte(`{}`), "bad")

		require.Error(t, err)
		assert.True(t, errs.Is(err, ErrWebhookRejected))
	})

	t.Run("store failure is not a rejection", func(t *testing.T) {
		h := newHarness(t)
		o := h.pendingOnline(t)
		h.store.failOps["orders.find"] = errors.New("connection refused")
		dispatcher := NewWebhookDispatcher(&stubVerifier{event: shared.PaymentEvent{ID: "evt_9", Kind: shared.EventPaymentSucceeded, OrderNumber: o.Number()}}, h.reconciler, discardLogger())

		_, err := dispatcher.HandleWebhook(ctx, []byte(`{}`), "t=1,v1=sig")

		require.Error(t, err)
		assert.False(t, errs.Is(err, ErrWebhookRejected))
	})
}
