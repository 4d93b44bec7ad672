package payment

import (
	"context"
	"strings"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	ErrProcessor       = errs.New("payment processor request failed")
	ErrSessionNotFound = shared.ErrPaymentSessionNotFound
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(cfg config.PaymentConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: api}
}

// NewStripeGatewayWithBackend points the client at a custom backend, e.g. a
// local stub in tests.
func NewStripeGatewayWithBackend(secretKey string, backend stripe.Backend) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in shared.CheckoutSessionInput) (*shared.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(in.SuccessURL),
		CancelURL:         stripe.String(in.CancelURL),
		CustomerEmail:     stripe.String(in.CustomerEmail),
		ClientReferenceID: stripe.String(in.OrderNumber),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: copyMetadata(in.Metadata),
		},
	}
	params.Context = ctx

	currency := strings.ToLower(in.Currency)
	for _, it := range in.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.AmountCents),
			},
			Quantity: stripe.Int64(qty),
		})
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "create checkout session"), ErrProcessor)
	}
	return &shared.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*shared.SessionState, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var se *stripe.Error
		if errs.As(err, &se) && se.HTTPStatusCode == 404 {
			return nil, errs.Mark(errs.Wrapf(err, "checkout session %s", sessionID), ErrSessionNotFound)
		}
		return nil, errs.Mark(errs.Wrap(err, "get checkout session"), ErrProcessor)
	}
	return sessionState(s), nil
}

func sessionState(s *stripe.CheckoutSession) *shared.SessionState {
	st := &shared.SessionState{
		ID:            s.ID,
		PaymentStatus: shared.PaymentStatus(s.PaymentStatus),
		OrderNumber:   s.Metadata[shared.MetaOrderNumber],
		Metadata:      s.Metadata,
	}
	if st.OrderNumber == "" {
		st.OrderNumber = s.ClientReferenceID
	}
	if s.PaymentIntent != nil {
		st.PaymentIntentID = s.PaymentIntent.ID
	}
	return st
}

func copyMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
