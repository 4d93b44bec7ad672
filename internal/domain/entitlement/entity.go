package entitlement

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow = errors.New("expiry must be after purchase date")
	ErrMissingRef    = errors.New("user, course and order number are required")
)

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusExpired
}

// Entitlement is a user's access to one course. There is at most one per
// (user, course); a repurchase overwrites the window instead of adding one.
type Entitlement struct {
	id           uuid.UUID
	userID       uuid.UUID
	courseID     uuid.UUID
	orderNumber  string
	purchaseDate time.Time
	expiresAt    time.Time
	status       Status
}

func NewEntitlement(userID, courseID uuid.UUID, orderNumber string, purchaseDate, expiresAt time.Time) (*Entitlement, error) {
	if userID == uuid.Nil || courseID == uuid.Nil || orderNumber == "" {
		return nil, ErrMissingRef
	}
	if !expiresAt.After(purchaseDate) {
		return nil, ErrInvalidWindow
	}
	return &Entitlement{
		id:           uuid.New(),
		userID:       userID,
		courseID:     courseID,
		orderNumber:  orderNumber,
		purchaseDate: purchaseDate,
		expiresAt:    expiresAt,
		status:       StatusActive,
	}, nil
}

func Reconstruct(id, userID, courseID uuid.UUID, orderNumber string, purchaseDate, expiresAt time.Time, status Status) *Entitlement {
	return &Entitlement{
		id:           id,
		userID:       userID,
		courseID:     courseID,
		orderNumber:  orderNumber,
		purchaseDate: purchaseDate,
		expiresAt:    expiresAt,
		status:       status,
	}
}

// RenewFrom replaces the window with the one from a newer purchase and reactivates.
func (e *Entitlement) RenewFrom(next *Entitlement) {
	e.orderNumber = next.orderNumber
	e.purchaseDate = next.purchaseDate
	e.expiresAt = next.expiresAt
	e.status = StatusActive
}

// ExpiredAt is strict: an entitlement expiring exactly at now is still active.
func (e *Entitlement) ExpiredAt(now time.Time) bool {
	return e.expiresAt.Before(now)
}

func (e *Entitlement) Expire() bool {
	if e.status == StatusExpired {
		return false
	}
	e.status = StatusExpired
	return true
}

func (e *Entitlement) ID() uuid.UUID           { return e.id }
func (e *Entitlement) UserID() uuid.UUID       { return e.userID }
func (e *Entitlement) CourseID() uuid.UUID     { return e.courseID }
func (e *Entitlement) OrderNumber() string     { return e.orderNumber }
func (e *Entitlement) PurchaseDate() time.Time { return e.purchaseDate }
func (e *Entitlement) ExpiresAt() time.Time    { return e.expiresAt }
func (e *Entitlement) Status() Status          { return e.status }
