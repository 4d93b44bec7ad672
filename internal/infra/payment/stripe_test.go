package payment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"course-checkout/internal/infra/payment"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *payment.StripeGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return payment.NewStripeGatewayWithBackend("sk_test_123", backend)
}

func TestStripeGateway_CreateCheckoutSession(t *testing.T) {
	var form map[string]string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://pay.example/cs_test_1"}`))
	})

	session, err := gw.CreateCheckoutSession(context.Background(), shared.CheckoutSessionInput{
		OrderNumber:   "ORD-1",
		CustomerEmail: "buyer@example.com",
		Currency:      "EUR",
		Items:         []shared.PaymentLineItem{{Name: "Course A", AmountCents: 5831, Quantity: 1}},
		Metadata:      map[string]string{shared.MetaOrderNumber: "ORD-1"},
		SuccessURL:    "https://shop.example/ok",
		CancelURL:     "https://shop.example/cancel",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://pay.example/cs_test_1", session.URL)
	assert.Equal(t, "payment", form["mode"])
	assert.Equal(t, "ORD-1", form["client_reference_id"])
	assert.Equal(t, "5831", form["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "eur", form["line_items[0][price_data][currency]"])
	assert.Equal(t, "Course A", form["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "ORD-1", form["metadata[order_number]"])
	assert.Equal(t, "ORD-1", form["payment_intent_data[metadata][order_number]"])
}

func TestStripeGateway_CreateCheckoutSession_ProcessorError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad"}}`))
	})

	_, err := gw.CreateCheckoutSession(context.Background(), shared.CheckoutSessionInput{
		OrderNumber: "ORD-1",
		Currency:    "eur",
		Items:       []shared.PaymentLineItem{{Name: "x", AmountCents: 100}},
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, payment.ErrProcessor))
}

func TestStripeGateway_GetCheckoutSession(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/checkout/sessions/cs_test_9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"cs_test_9",
			"object":"checkout.session",
			"payment_status":"paid",
			"payment_intent":"pi_9",
			"metadata":{"order_number":"ORD-9"}
		}`))
	})

	st, err := gw.GetCheckoutSession(context.Background(), "cs_test_9")
	require.NoError(t, err)
	assert.Equal(t, shared.PaymentStatusPaid, st.PaymentStatus)
	assert.Equal(t, "pi_9", st.PaymentIntentID)
	assert.Equal(t, "ORD-9", st.OrderNumber)
}
