package order

import (
	"errors"
	"fmt"
	"time"

	"course-checkout/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrInvalidType         = errors.New("invalid order type")
	ErrNoItems             = errors.New("order must contain at least one item")
	ErrInvalidItem         = errors.New("invalid order item")
	ErrMissingNumber       = errors.New("order number is required")
	ErrMissingBuyer        = errors.New("buyer is required")
	ErrPracticalDetails    = errors.New("practical orders need offering details and online orders must not have them")
	ErrCurrencyRequired    = errors.New("currency is required")
	ErrSessionAlreadyBound = errors.New("payment session already attached")
)

type Order struct {
	id               uuid.UUID
	number           string
	userID           uuid.UUID
	orderType        Type
	items            []LineItem
	total            pricing.Money
	currency         string
	status           Status
	paymentSessionID string
	paymentIntentID  string
	buyer            Buyer
	practical        *PracticalDetails
	invoice          Invoice
	paidAt           *time.Time
	expiresAt        *time.Time
	cancelledAt      *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

type NewOrderParams struct {
	Number    string
	UserID    uuid.UUID
	Type      Type
	Items     []LineItem
	Currency  string
	Buyer     Buyer
	Practical *PracticalDetails
	Now       time.Time
}

func NewOrder(p NewOrderParams) (*Order, error) {
	if p.Number == "" {
		return nil, ErrMissingNumber
	}
	if !p.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if p.UserID == uuid.Nil || p.Buyer.Email == "" {
		return nil, ErrMissingBuyer
	}
	if p.Currency == "" {
		return nil, ErrCurrencyRequired
	}
	if len(p.Items) == 0 {
		return nil, ErrNoItems
	}
	if (p.Type == TypePractical) != (p.Practical != nil) {
		return nil, ErrPracticalDetails
	}

	var total pricing.Money
	for i, it := range p.Items {
		if err := validateItem(p.Type, it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		total = total.Add(it.Price.Gross)
	}

	items := make([]LineItem, len(p.Items))
	copy(items, p.Items)

	return &Order{
		id:        uuid.New(),
		number:    p.Number,
		userID:    p.UserID,
		orderType: p.Type,
		items:     items,
		total:     total,
		currency:  p.Currency,
		status:    StatusPending,
		buyer:     p.Buyer,
		practical: p.Practical,
		createdAt: p.Now,
		updatedAt: p.Now,
	}, nil
}

func validateItem(t Type, it LineItem) error {
	if !it.Kind.IsValid() || it.Name == "" || it.RefID == uuid.Nil {
		return ErrInvalidItem
	}
	if (t == TypeOnline) != (it.Kind == ItemCourse) {
		return ErrInvalidItem
	}
	return nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	Number           string
	UserID           uuid.UUID
	Type             Type
	Items            []LineItem
	Total            pricing.Money
	Currency         string
	Status           Status
	PaymentSessionID string
	PaymentIntentID  string
	Buyer            Buyer
	Practical        *PracticalDetails
	Invoice          Invoice
	PaidAt           *time.Time
	ExpiresAt        *time.Time
	CancelledAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) *Order {
	return &Order{
		id:               p.ID,
		number:           p.Number,
		userID:           p.UserID,
		orderType:        p.Type,
		items:            p.Items,
		total:            p.Total,
		currency:         p.Currency,
		status:           p.Status,
		paymentSessionID: p.PaymentSessionID,
		paymentIntentID:  p.PaymentIntentID,
		buyer:            p.Buyer,
		practical:        p.Practical,
		invoice:          p.Invoice,
		paidAt:           p.PaidAt,
		expiresAt:        p.ExpiresAt,
		cancelledAt:      p.CancelledAt,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

func (o *Order) transition(next Status, now time.Time) error {
	if !o.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, next)
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// MarkPaid applies pending -> paid. Online orders get an access window
// starting at paidAt.
func (o *Order) MarkPaid(paidAt time.Time, paymentIntentID string, accessWindow time.Duration) error {
	if err := o.transition(StatusPaid, paidAt); err != nil {
		return err
	}
	o.paidAt = &paidAt
	if paymentIntentID != "" {
		o.paymentIntentID = paymentIntentID
	}
	if o.orderType == TypeOnline {
		exp := AccessExpiry(paidAt, accessWindow)
		o.expiresAt = &exp
	}
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	if err := o.transition(StatusCancelled, now); err != nil {
		return err
	}
	o.cancelledAt = &now
	return nil
}

// Expire only applies to online orders.
func (o *Order) Expire(now time.Time) error {
	if o.orderType != TypeOnline {
		return fmt.Errorf("%w: %s order cannot expire", ErrInvalidTransition, o.orderType)
	}
	return o.transition(StatusExpired, now)
}

func (o *Order) AttachPaymentSession(sessionID string, now time.Time) error {
	if o.paymentSessionID != "" && o.paymentSessionID != sessionID {
		return ErrSessionAlreadyBound
	}
	o.paymentSessionID = sessionID
	o.updatedAt = now
	return nil
}

func (o *Order) AttachInvoice(inv Invoice, now time.Time) {
	o.invoice = inv
	o.updatedAt = now
}

func AccessExpiry(paidAt time.Time, window time.Duration) time.Time {
	return paidAt.Add(window)
}

// CourseIDs returns the purchased courses of an online order in item order.
func (o *Order) CourseIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, it := range o.items {
		if it.Kind == ItemCourse {
			ids = append(ids, it.RefID)
		}
	}
	return ids
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) Type() Type                   { return o.orderType }
func (o *Order) Items() []LineItem            { return o.items }
func (o *Order) Total() pricing.Money         { return o.total }
func (o *Order) Currency() string             { return o.currency }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentSessionID() string     { return o.paymentSessionID }
func (o *Order) PaymentIntentID() string      { return o.paymentIntentID }
func (o *Order) Buyer() Buyer                 { return o.buyer }
func (o *Order) Practical() *PracticalDetails { return o.practical }
func (o *Order) Invoice() Invoice             { return o.invoice }
func (o *Order) PaidAt() *time.Time           { return o.paidAt }
func (o *Order) ExpiresAt() *time.Time        { return o.expiresAt }
func (o *Order) CancelledAt() *time.Time      { return o.cancelledAt }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
