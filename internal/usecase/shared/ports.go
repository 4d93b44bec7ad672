package shared

import (
	"context"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/user"
	"course-checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

// Metadata keys written into the processor session and payment intent. A
// webhook carrying them is enough to locate the order on its own.
const (
	MetaOrderNumber     = "order_number"
	MetaOrderType       = "order_type"
	MetaUserID          = "user_id"
	MetaCourseIDs       = "course_ids"
	MetaOfferingID      = "offering_id"
	MetaDateID          = "date_id"
	MetaWithPlasticCard = "with_plastic_card"
)

// ErrPaymentSessionNotFound is returned by gateways for unknown session ids.
var ErrPaymentSessionNotFound = errs.New("payment session not found")

// Repositories mark lookup misses and unique-key rejections with these.
var (
	ErrRecordNotFound  = errs.New("record not found")
	ErrDuplicateRecord = errs.New("duplicate record")
)

type PaymentLineItem struct {
	Name        string
	AmountCents int64
	Quantity    int64
}

type CheckoutSessionInput struct {
	OrderNumber   string
	CustomerEmail string
	Currency      string
	Items         []PaymentLineItem
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentStatus string

const (
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusUnpaid            PaymentStatus = "unpaid"
	PaymentStatusNoPaymentRequired PaymentStatus = "no_payment_required"
)

type SessionState struct {
	ID              string
	PaymentStatus   PaymentStatus
	PaymentIntentID string
	OrderNumber     string
	Metadata        map[string]string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*SessionState, error)
}

type EventKind string

const (
	EventSessionCompleted EventKind = "session_completed"
	EventPaymentSucceeded EventKind = "payment_succeeded"
	EventPaymentFailed    EventKind = "payment_failed"
	EventChargeRefunded   EventKind = "charge_refunded"
	EventUnhandled        EventKind = "unhandled"
)

// PaymentEvent is a verified processor event reduced to what the reconciler needs.
type PaymentEvent struct {
	ID              string
	Type            string
	Kind            EventKind
	OrderNumber     string
	SessionID       string
	PaymentIntentID string
	// SessionPaid is set for completed sessions whose payment is captured.
	SessionPaid bool
	// FullyRefunded distinguishes a full refund from a partial one.
	FullyRefunded bool
	CreatedAt     time.Time
}

type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (*PaymentEvent, error)
}

type InvoiceLine struct {
	Description string
	Quantity    int
	NetCents    int64
	GrossCents  int64
	VATRate     string
}

type InvoiceRequest struct {
	OrderNumber string
	Currency    string
	Buyer       order.Buyer
	Lines       []InvoiceLine
	PaidAt      time.Time
}

type IssuedInvoice struct {
	ID     string
	Number string
	PDFURL string
}

type InvoiceClient interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*IssuedInvoice, error)
}

type Notifier interface {
	SendWelcome(ctx context.Context, u *user.User) error
	SendPurchaseConfirmation(ctx context.Context, o *order.Order) error
	SendBookingConfirmation(ctx context.Context, o *order.Order) error
	SendExpiryReminder(ctx context.Context, r ExpiryReminder) error
	SendPracticalReminder(ctx context.Context, r PracticalReminder) error
}

type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OrderType   string    `json:"order_type"`
	Status      string    `json:"status"`
	UserID      uuid.UUID `json:"user_id"`
	TotalCents  int64     `json:"total_cents"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, error)
}
