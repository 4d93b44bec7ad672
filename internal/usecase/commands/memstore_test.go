package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"course-checkout/internal/domain/booking"
	"course-checkout/internal/domain/entitlement"
	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/pricing"
	"course-checkout/internal/domain/user"
	"course-checkout/internal/infra"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/usecase/queries"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory store with the same per-statement atomicity as
// the Postgres repositories: every call is atomic, a transaction is not.
// That is enough to exercise the compare-and-set paths under concurrency.
type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]user.User
	courses      map[uuid.UUID]shared.CourseSnapshot
	offerings    map[uuid.UUID]booking.Offering
	spots        map[uuid.UUID]int
	orders       map[uuid.UUID]order.Order
	entitlements map[[2]uuid.UUID]entitlement.Entitlement
	participants map[uuid.UUID]booking.Participant

	decrements int
	increments int
	// failOps makes the named repository call fail with the given error.
	failOps map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[uuid.UUID]user.User{},
		courses:      map[uuid.UUID]shared.CourseSnapshot{},
		offerings:    map[uuid.UUID]booking.Offering{},
		spots:        map[uuid.UUID]int{},
		orders:       map[uuid.UUID]order.Order{},
		entitlements: map[[2]uuid.UUID]entitlement.Entitlement{},
		participants: map[uuid.UUID]booking.Participant{},
		failOps:      map[string]error{},
	}
}

func (s *memStore) fail(op string) error {
	return s.failOps[op]
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

// seeding

func (s *memStore) addCourse(title string, netCents int64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.courses[id] = shared.CourseSnapshot{ID: id, Slug: title, Title: title, NetPrice: pricing.MustMoney(netCents), IsActive: true}
	return id
}

func (s *memStore) addOffering(startsAt time.Time, spots int) (offeringID, dateID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offeringID, dateID = uuid.New(), uuid.New()
	s.offerings[offeringID] = booking.Offering{
		ID:              offeringID,
		CourseID:        uuid.New(),
		Title:           "Practical training Berlin",
		Location:        booking.Location{Name: "Training Center Mitte", Street: "Invalidenstr. 1", City: "Berlin"},
		SeatPrice:       pricing.MustMoney(24900),
		PlasticCardNet:  pricing.MustMoney(1000),
		PlasticCardName: "Plastic certificate card",
		Dates:           []booking.DateSlot{{ID: dateID, StartsAt: startsAt, EndsAt: startsAt.Add(8 * time.Hour)}},
	}
	s.spots[dateID] = spots
	return offeringID, dateID
}

func (s *memStore) putOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = *o
}

func (s *memStore) putUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = *u
}

func (s *memStore) user(id uuid.UUID) *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *memStore) order(number string) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.Number() == number {
			c := o
			return &c
		}
	}
	return nil
}

func (s *memStore) spotsLeft(dateID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spots[dateID]
}

func (s *memStore) participantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

func (s *memStore) entitlementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entitlements)
}

func (s *memStore) entitlementOf(userID, courseID uuid.UUID) *entitlement.Entitlement {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entitlements[[2]uuid.UUID{userID, courseID}]
	if !ok {
		return nil
	}
	return &e
}

func (s *memStore) seatMoves() (dec, inc int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decrements, s.increments
}

// unit of work

type memUoW struct {
	store *memStore
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &memTx{s: u.store})
}

func (u *memUoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &memTx{s: u.store})
}

type memTx struct {
	s *memStore
}

func (t *memTx) Users() shared.UserRepository               { return memUsers{t.s} }
func (t *memTx) Catalog() shared.CatalogReader              { return memCatalog{t.s} }
func (t *memTx) Orders() shared.OrderRepository             { return memOrders{t.s} }
func (t *memTx) Entitlements() shared.EntitlementRepository { return memEntitlements{t.s} }
func (t *memTx) Seats() shared.SeatRepository               { return memSeats{t.s} }
func (t *memTx) Participants() shared.ParticipantRepository { return memParticipants{t.s} }
func (t *memTx) DB() sqlc.DBTX                              { return nil }

type memUsers struct{ s *memStore }

func (r memUsers) FindByEmail(_ context.Context, _ sqlc.DBTX, email user.Email) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email() == email {
			c := u
			return &c, nil
		}
	}
	return nil, notFound("user")
}

func (r memUsers) FindByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &u, nil
}

func (r memUsers) Create(_ context.Context, _ sqlc.DBTX, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email() == u.Email() {
			return infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
		}
	}
	r.s.users[u.ID()] = *u
	return nil
}

func (r memUsers) UpdateContact(_ context.Context, _ sqlc.DBTX, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID()]; !ok {
		return notFound("user")
	}
	r.s.users[u.ID()] = *u
	return nil
}

type memCatalog struct{ s *memStore }

func (r memCatalog) CourseByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*shared.CourseSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, notFound("course")
	}
	return &c, nil
}

func (r memCatalog) OfferingByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*booking.Offering, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.offerings[id]
	if !ok {
		return nil, notFound("offering")
	}
	dates := make([]booking.DateSlot, len(o.Dates))
	for i, d := range o.Dates {
		d.AvailableSpots = r.s.spots[d.ID]
		dates[i] = d
	}
	o.Dates = dates
	return &o, nil
}

type memOrders struct{ s *memStore }

func (r memOrders) Create(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.create"); err != nil {
		return err
	}
	for _, existing := range r.s.orders {
		if existing.Number() == o.Number() {
			return infra.WrapRepoErr("order number taken", nil, infra.KindDuplicateKey)
		}
	}
	r.s.orders[o.ID()] = *o
	return nil
}

func (r memOrders) find(match func(order.Order) bool) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.find"); err != nil {
		return nil, err
	}
	for _, o := range r.s.orders {
		if match(o) {
			c := o
			return &c, nil
		}
	}
	return nil, notFound("order")
}

func (r memOrders) FindByNumber(_ context.Context, _ sqlc.DBTX, number string) (*order.Order, error) {
	return r.find(func(o order.Order) bool { return o.Number() == number })
}

func (r memOrders) FindBySessionID(_ context.Context, _ sqlc.DBTX, sessionID string) (*order.Order, error) {
	return r.find(func(o order.Order) bool { return sessionID != "" && o.PaymentSessionID() == sessionID })
}

func (r memOrders) FindByPaymentIntentID(_ context.Context, _ sqlc.DBTX, intentID string) (*order.Order, error) {
	return r.find(func(o order.Order) bool { return intentID != "" && o.PaymentIntentID() == intentID })
}

func (r memOrders) AttachPaymentSession(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[o.ID()]
	if !ok {
		return notFound("order")
	}
	if stored.PaymentSessionID() != "" && stored.PaymentSessionID() != o.PaymentSessionID() {
		return infra.WrapRepoErr("session already bound", nil, infra.KindConflict)
	}
	_ = stored.AttachPaymentSession(o.PaymentSessionID(), o.UpdatedAt())
	r.s.orders[o.ID()] = stored
	return nil
}

func (r memOrders) SaveTransition(_ context.Context, _ sqlc.DBTX, o *order.Order, expected order.Status) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.transition"); err != nil {
		return false, err
	}
	stored, ok := r.s.orders[o.ID()]
	if !ok || stored.Status() != expected {
		return false, nil
	}
	r.s.orders[o.ID()] = *o
	return true, nil
}

func (r memOrders) SaveInvoice(_ context.Context, _ sqlc.DBTX, o *order.Order) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[o.ID()]
	if !ok || stored.Invoice().Issued() {
		return false, nil
	}
	stored.AttachInvoice(o.Invoice(), o.UpdatedAt())
	r.s.orders[o.ID()] = stored
	return true, nil
}

func (r memOrders) ExpireDueOnline(_ context.Context, _ sqlc.DBTX, now time.Time) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var numbers []string
	for id, o := range r.s.orders {
		if o.Type() != order.TypeOnline || o.Status() != order.StatusPaid || o.ExpiresAt() == nil || !o.ExpiresAt().Before(now) {
			continue
		}
		if err := o.Expire(now); err != nil {
			return nil, err
		}
		r.s.orders[id] = o
		numbers = append(numbers, o.Number())
	}
	return numbers, nil
}

type memEntitlements struct{ s *memStore }

func (r memEntitlements) Upsert(_ context.Context, _ sqlc.DBTX, e *entitlement.Entitlement) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("entitlements.upsert"); err != nil {
		return false, err
	}
	key := [2]uuid.UUID{e.UserID(), e.CourseID()}
	if existing, ok := r.s.entitlements[key]; ok {
		existing.RenewFrom(e)
		r.s.entitlements[key] = existing
		return false, nil
	}
	r.s.entitlements[key] = *e
	return true, nil
}

func (r memEntitlements) Find(_ context.Context, _ sqlc.DBTX, userID, courseID uuid.UUID) (*entitlement.Entitlement, error) {
	if e := r.s.entitlementOf(userID, courseID); e != nil {
		return e, nil
	}
	return nil, notFound("entitlement")
}

func (r memEntitlements) ExpireDue(_ context.Context, _ sqlc.DBTX, now time.Time) ([]shared.ExpiredEntitlement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []shared.ExpiredEntitlement
	for key, e := range r.s.entitlements {
		if e.Status() != entitlement.StatusActive || !e.ExpiredAt(now) {
			continue
		}
		e.Expire()
		r.s.entitlements[key] = e
		out = append(out, shared.ExpiredEntitlement{UserID: e.UserID(), CourseID: e.CourseID(), OrderNumber: e.OrderNumber()})
	}
	return out, nil
}

func (r memEntitlements) ListExpiringBetween(_ context.Context, _ sqlc.DBTX, from, to time.Time) ([]shared.ExpiryReminder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []shared.ExpiryReminder
	for _, e := range r.s.entitlements {
		if e.Status() != entitlement.StatusActive || e.ExpiresAt().Before(from) || !e.ExpiresAt().Before(to) {
			continue
		}
		u := r.s.users[e.UserID()]
		out = append(out, shared.ExpiryReminder{
			UserID:      e.UserID(),
			Email:       u.Email().Value(),
			FirstName:   u.Contact().FirstName,
			CourseID:    e.CourseID(),
			CourseTitle: r.s.courses[e.CourseID()].Title,
			OrderNumber: e.OrderNumber(),
			ExpiresAt:   e.ExpiresAt(),
		})
	}
	return out, nil
}

type memSeats struct{ s *memStore }

func (r memSeats) Decrement(_ context.Context, _ sqlc.DBTX, offeringID, dateID uuid.UUID) (shared.SeatChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.hasSlot(offeringID, dateID) {
		return shared.SeatSlotMissing, nil
	}
	if r.s.spots[dateID] == 0 {
		return shared.SeatAtFloor, nil
	}
	r.s.spots[dateID]--
	r.s.decrements++
	return shared.SeatChanged, nil
}

func (r memSeats) Increment(_ context.Context, _ sqlc.DBTX, offeringID, dateID uuid.UUID) (shared.SeatChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.hasSlot(offeringID, dateID) {
		return shared.SeatSlotMissing, nil
	}
	r.s.spots[dateID]++
	r.s.increments++
	return shared.SeatChanged, nil
}

func (s *memStore) hasSlot(offeringID, dateID uuid.UUID) bool {
	o, ok := s.offerings[offeringID]
	if !ok {
		return false
	}
	for _, d := range o.Dates {
		if d.ID == dateID {
			return true
		}
	}
	return false
}

type memParticipants struct{ s *memStore }

func (r memParticipants) Insert(_ context.Context, _ sqlc.DBTX, p *booking.Participant) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.participants {
		if existing.OrderID() == p.OrderID() {
			return false, nil
		}
		if existing.UserID() == p.UserID() && existing.OfferingID() == p.OfferingID() && existing.DateID() == p.DateID() {
			return false, nil
		}
	}
	r.s.participants[p.ID()] = *p
	return true, nil
}

func (r memParticipants) find(match func(booking.Participant) bool) (*booking.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.participants {
		if match(p) {
			c := p
			return &c, nil
		}
	}
	return nil, notFound("participant")
}

func (r memParticipants) FindByOrderID(_ context.Context, _ sqlc.DBTX, orderID uuid.UUID) (*booking.Participant, error) {
	return r.find(func(p booking.Participant) bool { return p.OrderID() == orderID })
}

func (r memParticipants) FindByOrderNumber(_ context.Context, _ sqlc.DBTX, number string) (*booking.Participant, error) {
	return r.find(func(p booking.Participant) bool { return p.OrderNumber() == number })
}

func (r memParticipants) SaveCancellation(_ context.Context, _ sqlc.DBTX, p *booking.Participant) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.participants[p.ID()]
	if !ok || stored.Status() == booking.ParticipantCancelled {
		return false, nil
	}
	r.s.participants[p.ID()] = *p
	return true, nil
}

func (r memParticipants) ListStartingBetween(_ context.Context, _ sqlc.DBTX, from, to time.Time) ([]shared.PracticalReminder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []shared.PracticalReminder
	for _, p := range r.s.participants {
		if p.Status() != booking.ParticipantConfirmed {
			continue
		}
		off := r.s.offerings[p.OfferingID()]
		for _, d := range off.Dates {
			if d.ID != p.DateID() || d.StartsAt.Before(from) || !d.StartsAt.Before(to) {
				continue
			}
			u := r.s.users[p.UserID()]
			out = append(out, shared.PracticalReminder{
				OrderNumber:   p.OrderNumber(),
				Email:         u.Email().Value(),
				FirstName:     u.Contact().FirstName,
				OfferingTitle: off.Title,
				LocationName:  off.Location.Name,
				Street:        off.Location.Street,
				City:          off.Location.City,
				StartsAt:      d.StartsAt,
			})
		}
	}
	return out, nil
}

// external collaborators

type fakeGateway struct {
	mu       sync.Mutex
	inputs   []shared.CheckoutSessionInput
	states   map[string]*shared.SessionState
	createFn func(in shared.CheckoutSessionInput) (*shared.CheckoutSession, error)
	getErr   error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{states: map[string]*shared.SessionState{}}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, in shared.CheckoutSessionInput) (*shared.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs = append(g.inputs, in)
	if g.createFn != nil {
		return g.createFn(in)
	}
	id := fmt.Sprintf("cs_test_%d", len(g.inputs))
	g.states[id] = &shared.SessionState{
		ID:            id,
		PaymentStatus: shared.PaymentStatusUnpaid,
		OrderNumber:   in.OrderNumber,
		Metadata:      in.Metadata,
	}
	return &shared.CheckoutSession{ID: id, URL: "https://pay.example.com/" + id}, nil
}

func (g *fakeGateway) GetCheckoutSession(_ context.Context, id string) (*shared.SessionState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.getErr != nil {
		return nil, g.getErr
	}
	st, ok := g.states[id]
	if !ok {
		return nil, shared.ErrPaymentSessionNotFound
	}
	c := *st
	return &c, nil
}

func (g *fakeGateway) markPaid(id, intentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.states[id].PaymentStatus = shared.PaymentStatusPaid
	g.states[id].PaymentIntentID = intentID
}

type fakeInvoiceClient struct {
	mu    sync.Mutex
	calls []shared.InvoiceRequest
	err   error
	panic bool
}

func (c *fakeInvoiceClient) CreateInvoice(_ context.Context, req shared.InvoiceRequest) (*shared.IssuedInvoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if c.panic {
		panic("invoicing client exploded")
	}
	if c.err != nil {
		return nil, c.err
	}
	n := len(c.calls)
	return &shared.IssuedInvoice{
		ID:     fmt.Sprintf("inv_%d", n),
		Number: fmt.Sprintf("RE-%04d", n),
		PDFURL: fmt.Sprintf("https://invoices.example.com/%d.pdf", n),
	}, nil
}

func (c *fakeInvoiceClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type fakeNotifier struct {
	mu        sync.Mutex
	sent      map[string]int
	err       error
	reminders []shared.ExpiryReminder
	practical []shared.PracticalReminder
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: map[string]int{}}
}

func (n *fakeNotifier) record(kind string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent[kind]++
	return nil
}

func (n *fakeNotifier) SendWelcome(context.Context, *user.User) error { return n.record("welcome") }
func (n *fakeNotifier) SendPurchaseConfirmation(context.Context, *order.Order) error {
	return n.record("purchase")
}
func (n *fakeNotifier) SendBookingConfirmation(context.Context, *order.Order) error {
	return n.record("booking")
}

func (n *fakeNotifier) SendExpiryReminder(_ context.Context, r shared.ExpiryReminder) error {
	if err := n.record("expiry"); err != nil {
		return err
	}
	n.mu.Lock()
	n.reminders = append(n.reminders, r)
	n.mu.Unlock()
	return nil
}

func (n *fakeNotifier) SendPracticalReminder(_ context.Context, r shared.PracticalReminder) error {
	if err := n.record("practical"); err != nil {
		return err
	}
	n.mu.Lock()
	n.practical = append(n.practical, r)
	n.mu.Unlock()
	return nil
}

func (n *fakeNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[kind]
}

type fakeEvents struct {
	mu     sync.Mutex
	events []shared.OrderEvent
	err    error
}

func (e *fakeEvents) Publish(_ context.Context, ev shared.OrderEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, ev)
	return nil
}

func (e *fakeEvents) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID uuid.UUID, role user.Role) (string, error) {
	return "token-" + role.String() + "-" + userID.String(), nil
}

type seqNumbers struct{ n atomic.Int64 }

func (g *seqNumbers) Next() string {
	return fmt.Sprintf("ORD-%06d", g.n.Add(1))
}

// storeReadStore renders the minimal view the session endpoint needs.
type storeReadStore struct{ s *memStore }

func (r storeReadStore) FindByNumber(_ context.Context, number string) (*queries.OrderView, error) {
	o := r.s.order(number)
	if o == nil {
		return nil, notFound("order")
	}
	return &queries.OrderView{
		ID:          o.ID(),
		OrderNumber: o.Number(),
		UserID:      o.UserID(),
		OrderType:   o.Type().String(),
		Status:      o.Status().String(),
		Currency:    o.Currency(),
		TotalCents:  o.Total().Cents(),
		PaidAt:      o.PaidAt(),
	}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
