package booking

import (
	"errors"
	"time"

	"course-checkout/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound    = errors.New("date slot not found in offering")
	ErrNegativeSpots   = errors.New("available spots cannot be negative")
	ErrSlotInThePast   = errors.New("date slot has already started")
	ErrOfferingInvalid = errors.New("offering is invalid")
)

type Location struct {
	Name   string
	Street string
	City   string
}

// DateSlot is one scheduled in-person session. AvailableSpots never goes
// below zero.
type DateSlot struct {
	ID             uuid.UUID
	StartsAt       time.Time
	EndsAt         time.Time
	AvailableSpots int
}

func (s DateSlot) HasCapacity() bool {
	return s.AvailableSpots > 0
}

// Decremented is the saturating decrement. ok is false when the slot was
// already at zero.
func (s DateSlot) Decremented() (next DateSlot, ok bool) {
	if s.AvailableSpots <= 0 {
		s.AvailableSpots = 0
		return s, false
	}
	s.AvailableSpots--
	return s, true
}

func (s DateSlot) Incremented() DateSlot {
	s.AvailableSpots++
	return s
}

// Offering is a practical course held at one location on several dates.
type Offering struct {
	ID              uuid.UUID
	CourseID        uuid.UUID
	Title           string
	Location        Location
	SeatPrice       pricing.Money
	PlasticCardNet  pricing.Money
	PlasticCardName string
	Dates           []DateSlot
}

func (o *Offering) Slot(dateID uuid.UUID) (DateSlot, error) {
	for _, d := range o.Dates {
		if d.ID == dateID {
			return d, nil
		}
	}
	return DateSlot{}, ErrSlotNotFound
}

// BookableSlot checks the slot exists and has not started yet.
func (o *Offering) BookableSlot(dateID uuid.UUID, now time.Time) (DateSlot, error) {
	slot, err := o.Slot(dateID)
	if err != nil {
		return DateSlot{}, err
	}
	if !slot.StartsAt.After(now) {
		return DateSlot{}, ErrSlotInThePast
	}
	return slot, nil
}
