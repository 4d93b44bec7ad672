package shared

import (
	"time"

	"course-checkout/internal/domain/pricing"

	"github.com/google/uuid"
)

type CourseSnapshot struct {
	ID       uuid.UUID
	Slug     string
	Title    string
	NetPrice pricing.Money
	IsActive bool
}

type SeatChange string

const (
	SeatChanged     SeatChange = "changed"
	SeatAtFloor     SeatChange = "at_floor"
	SeatSlotMissing SeatChange = "slot_missing"
)

type ExpiredEntitlement struct {
	UserID      uuid.UUID
	CourseID    uuid.UUID
	OrderNumber string
}

type ExpiryReminder struct {
	UserID      uuid.UUID
	Email       string
	FirstName   string
	CourseID    uuid.UUID
	CourseTitle string
	OrderNumber string
	ExpiresAt   time.Time
}

type PracticalReminder struct {
	OrderNumber   string
	Email         string
	FirstName     string
	OfferingTitle string
	LocationName  string
	Street        string
	City          string
	StartsAt      time.Time
}
