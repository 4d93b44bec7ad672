package payment

import (
	"encoding/json"
	"time"

	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

var (
	ErrInvalidSignature = errs.New("invalid webhook signature")
	ErrMalformedEvent   = errs.New("malformed webhook event")
)

const (
	eventCheckoutSessionCompleted = "checkout.session.completed"
	eventPaymentIntentSucceeded   = "payment_intent.succeeded"
	eventPaymentIntentFailed      = "payment_intent.payment_failed"
	eventChargeRefunded           = "charge.refunded"
)

type StripeWebhookVerifier struct {
	secret string
}

func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{secret: secret}
}

// Verify checks the signature header against the raw body and reduces the
// event to the fields the reconciler uses. Unknown event types come back
// with Kind EventUnhandled rather than an error.
func (v *StripeWebhookVerifier) Verify(payload []byte, signatureHeader string) (*shared.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "construct event"), ErrInvalidSignature)
	}

	ev := &shared.PaymentEvent{
		ID:        event.ID,
		Type:      string(event.Type),
		Kind:      shared.EventUnhandled,
		CreatedAt: time.Unix(event.Created, 0).UTC(),
	}
	if event.Data == nil {
		return ev, nil
	}

	switch string(event.Type) {
	case eventCheckoutSessionCompleted:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "decode checkout session"), ErrMalformedEvent)
		}
		ev.Kind = shared.EventSessionCompleted
		ev.SessionID = s.ID
		ev.OrderNumber = s.Metadata[shared.MetaOrderNumber]
		if ev.OrderNumber == "" {
			ev.OrderNumber = s.ClientReferenceID
		}
		if s.PaymentIntent != nil {
			ev.PaymentIntentID = s.PaymentIntent.ID
		}
		ev.SessionPaid = s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
			s.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired

	case eventPaymentIntentSucceeded, eventPaymentIntentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "decode payment intent"), ErrMalformedEvent)
		}
		ev.Kind = shared.EventPaymentSucceeded
		if string(event.Type) == eventPaymentIntentFailed {
			ev.Kind = shared.EventPaymentFailed
		}
		ev.PaymentIntentID = pi.ID
		ev.OrderNumber = pi.Metadata[shared.MetaOrderNumber]

	case eventChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "decode charge"), ErrMalformedEvent)
		}
		ev.Kind = shared.EventChargeRefunded
		if ch.PaymentIntent != nil {
			ev.PaymentIntentID = ch.PaymentIntent.ID
		}
		ev.OrderNumber = ch.Metadata[shared.MetaOrderNumber]
		ev.FullyRefunded = ch.Refunded || (ch.Amount > 0 && ch.AmountRefunded >= ch.Amount)
	}

	return ev, nil
}
