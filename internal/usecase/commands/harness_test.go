package commands

import (
	"context"
	"testing"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/pricing"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testAccessWindow = 30 * 24 * time.Hour

type harness struct {
	store    *memStore
	uow      *memUoW
	clock    *clock.MockClock
	gateway  *fakeGateway
	invoices *fakeInvoiceClient
	notifier *fakeNotifier
	events   *fakeEvents

	entitlements *EntitlementManager
	seats        *SeatInventory
	issuer       *InvoiceIssuer
	reconciler   PaymentReconciler
	checkout     CheckoutCommands
	sweeper      SweepCommands
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	resolver, err := pricing.NewVATResolverFromString("0.19")
	require.NoError(t, err)

	h := &harness{
		store:    newMemStore(),
		clock:    clock.NewMockClock(builder.BaseTime),
		gateway:  newFakeGateway(),
		invoices: &fakeInvoiceClient{},
		notifier: newFakeNotifier(),
		events:   &fakeEvents{},
	}
	h.uow = &memUoW{store: h.store}
	logger := discardLogger()

	h.entitlements = NewEntitlementManager(logger)
	h.seats = NewSeatInventory(h.uow, h.events, h.clock, logger)
	h.issuer = NewInvoiceIssuer(h.uow, h.invoices, resolver, h.clock, logger)
	fulfilment := NewFulfilment(h.issuer, h.notifier, h.events, h.clock, logger)
	h.reconciler = NewPaymentReconciler(h.uow, h.entitlements, h.seats, fulfilment, h.clock, testAccessWindow, logger)
	h.checkout = NewCheckoutCommands(
		h.uow, h.gateway, resolver, &seqNumbers{}, fakeTokens{}, h.notifier, h.reconciler,
		storeReadStore{s: h.store},
		CheckoutSettings{PublicBaseURL: "https://shop.example.com/", SuccessPath: "/checkout/success", CancelPath: "/checkout/cancel", Currency: "eur"},
		h.clock, logger,
	)
	h.sweeper = NewSweeper(h.uow, h.notifier, h.events, 7*24*time.Hour, time.UTC, h.clock, logger)
	return h
}

// pendingOnline stores a pending online order for a seeded course and buyer.
func (h *harness) pendingOnline(t *testing.T) *order.Order {
	t.Helper()
	courseID := h.store.addCourse("Online first aid course", 4900)
	o := builder.NewOnlineOrderBuilder().With(func(b *builder.OrderBuilder) {
		b.Items[0].RefID = courseID
	}).MustBuild(t)
	h.store.putOrder(o)
	return o
}

// pendingPractical stores a pending practical order for a slot with spots seats.
func (h *harness) pendingPractical(t *testing.T, spots int) (*order.Order, uuid.UUID) {
	t.Helper()
	offeringID, dateID := h.store.addOffering(builder.BaseTime.Add(14*24*time.Hour), spots)
	o := builder.NewPracticalOrderBuilder().With(func(b *builder.OrderBuilder) {
		for i := range b.Items {
			b.Items[i].RefID = offeringID
		}
		b.Practical.OfferingID = offeringID
		b.Practical.DateID = dateID
	}).MustBuild(t)
	h.store.putOrder(o)
	return o, dateID
}

func (h *harness) confirm(t *testing.T, o *order.Order) ReconcileOutcome {
	t.Helper()
	outcome, err := h.reconciler.ConfirmPayment(context.Background(), PaymentRef{EventID: "evt_" + o.Number(), OrderNumber: o.Number()})
	require.NoError(t, err)
	return outcome
}
