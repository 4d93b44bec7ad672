package commands

import (
	"context"
	"log/slog"

	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

type WebhookResult struct {
	EventID string
	Kind    shared.EventKind
	Outcome ReconcileOutcome
}

type WebhookCommands interface {
	// HandleWebhook verifies and applies one processor event. Errors marked
	// ErrWebhookRejected mean the payload must not be retried as is; any other
	// error is a store failure worth a redelivery.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
}

type webhookDispatcher struct {
	verifier   shared.WebhookVerifier
	reconciler PaymentReconciler
	logger     *slog.Logger
}

func NewWebhookDispatcher(verifier shared.WebhookVerifier, reconciler PaymentReconciler, logger *slog.Logger) WebhookCommands {
	return &webhookDispatcher{
		verifier:   verifier,
		reconciler: reconciler,
		logger:     logger,
	}
}

func (d *webhookDispatcher) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	ev, err := d.verifier.Verify(payload, signature)
	if err != nil {
		d.logger.Warn("webhook rejected", "error", err.Error())
		return nil, errs.Mark(err, ErrWebhookRejected)
	}

	ref := PaymentRef{
		EventID:         ev.ID,
		OrderNumber:     ev.OrderNumber,
		SessionID:       ev.SessionID,
		PaymentIntentID: ev.PaymentIntentID,
	}
	result := &WebhookResult{EventID: ev.ID, Kind: ev.Kind, Outcome: OutcomeIgnored}

	switch ev.Kind {
	case shared.EventSessionCompleted:
		// Delayed payment methods complete the session before the money
		// arrives; the later payment_succeeded event confirms those.
		if ev.SessionPaid {
			result.Outcome, err = d.reconciler.ConfirmPayment(ctx, ref)
		}
	case shared.EventPaymentSucceeded:
		result.Outcome, err = d.reconciler.ConfirmPayment(ctx, ref)
	case shared.EventPaymentFailed:
		result.Outcome, err = d.reconciler.CancelPayment(ctx, ref, CancelPaymentFailed)
	case shared.EventChargeRefunded:
		if ev.FullyRefunded {
			result.Outcome, err = d.reconciler.CancelPayment(ctx, ref, CancelRefunded)
		}
	}
	if err != nil {
		return nil, err
	}

	d.logger.Info("webhook processed",
		"event_id", ev.ID,
		"event_type", ev.Type,
		"order_number", ev.OrderNumber,
		"outcome", string(result.Outcome))
	return result, nil
}
