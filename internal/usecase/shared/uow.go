package shared

import (
	"context"
	"time"

	"course-checkout/internal/domain/booking"
	"course-checkout/internal/domain/entitlement"
	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/user"
	sqlc "course-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single statements on the pool, no explicit transaction
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Users() UserRepository
	Catalog() CatalogReader
	Orders() OrderRepository
	Entitlements() EntitlementRepository
	Seats() SeatRepository
	Participants() ParticipantRepository
	DB() sqlc.DBTX
}

type UserRepository interface {
	FindByEmail(ctx context.Context, db sqlc.DBTX, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*user.User, error)
	Create(ctx context.Context, db sqlc.DBTX, u *user.User) error
	UpdateContact(ctx context.Context, db sqlc.DBTX, u *user.User) error
}

type CatalogReader interface {
	CourseByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*CourseSnapshot, error)
	OfferingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*booking.Offering, error)
}

type OrderRepository interface {
	Create(ctx context.Context, db sqlc.DBTX, o *order.Order) error
	FindByNumber(ctx context.Context, db sqlc.DBTX, number string) (*order.Order, error)
	FindBySessionID(ctx context.Context, db sqlc.DBTX, sessionID string) (*order.Order, error)
	FindByPaymentIntentID(ctx context.Context, db sqlc.DBTX, paymentIntentID string) (*order.Order, error)
	AttachPaymentSession(ctx context.Context, db sqlc.DBTX, o *order.Order) error
	// SaveTransition persists o's current status only if the stored status is
	// still expected. It reports false when another writer got there first.
	SaveTransition(ctx context.Context, db sqlc.DBTX, o *order.Order, expected order.Status) (bool, error)
	// SaveInvoice stores invoice identifiers unless some are already stored.
	SaveInvoice(ctx context.Context, db sqlc.DBTX, o *order.Order) (bool, error)
	ExpireDueOnline(ctx context.Context, db sqlc.DBTX, now time.Time) ([]string, error)
}

type EntitlementRepository interface {
	// Upsert inserts or overwrites the (user, course) row. created is false on overwrite.
	Upsert(ctx context.Context, db sqlc.DBTX, e *entitlement.Entitlement) (created bool, err error)
	Find(ctx context.Context, db sqlc.DBTX, userID, courseID uuid.UUID) (*entitlement.Entitlement, error)
	ExpireDue(ctx context.Context, db sqlc.DBTX, now time.Time) ([]ExpiredEntitlement, error)
	ListExpiringBetween(ctx context.Context, db sqlc.DBTX, from, to time.Time) ([]ExpiryReminder, error)
}

type SeatRepository interface {
	// Decrement never takes the counter below zero.
	Decrement(ctx context.Context, db sqlc.DBTX, offeringID, dateID uuid.UUID) (SeatChange, error)
	Increment(ctx context.Context, db sqlc.DBTX, offeringID, dateID uuid.UUID) (SeatChange, error)
}

type ParticipantRepository interface {
	// Insert reports false when a unique key (order, or user+slot) already exists.
	Insert(ctx context.Context, db sqlc.DBTX, p *booking.Participant) (bool, error)
	FindByOrderID(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) (*booking.Participant, error)
	FindByOrderNumber(ctx context.Context, db sqlc.DBTX, orderNumber string) (*booking.Participant, error)
	// SaveCancellation only succeeds for a participant that is not cancelled yet.
	SaveCancellation(ctx context.Context, db sqlc.DBTX, p *booking.Participant) (bool, error)
	ListStartingBetween(ctx context.Context, db sqlc.DBTX, from, to time.Time) ([]PracticalReminder, error)
}
