package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrParticipantInvalid = errors.New("participant needs order, user, offering and date")

type ParticipantStatus string

const (
	ParticipantConfirmed ParticipantStatus = "confirmed"
	ParticipantCancelled ParticipantStatus = "cancelled"
	ParticipantCompleted ParticipantStatus = "completed"
)

func (s ParticipantStatus) IsValid() bool {
	switch s {
	case ParticipantConfirmed, ParticipantCancelled, ParticipantCompleted:
		return true
	default:
		return false
	}
}

// Participant is the booking created when a practical order is paid.
// Unique per order and per (user, offering, date).
type Participant struct {
	id              uuid.UUID
	orderID         uuid.UUID
	orderNumber     string
	userID          uuid.UUID
	offeringID      uuid.UUID
	dateID          uuid.UUID
	withPlasticCard bool
	status          ParticipantStatus
	createdAt       time.Time
	cancelledAt     *time.Time
}

type NewParticipantParams struct {
	OrderID         uuid.UUID
	OrderNumber     string
	UserID          uuid.UUID
	OfferingID      uuid.UUID
	DateID          uuid.UUID
	WithPlasticCard bool
	Now             time.Time
}

func NewParticipant(p NewParticipantParams) (*Participant, error) {
	if p.OrderID == uuid.Nil || p.OrderNumber == "" || p.UserID == uuid.Nil || p.OfferingID == uuid.Nil || p.DateID == uuid.Nil {
		return nil, ErrParticipantInvalid
	}
	return &Participant{
		id:              uuid.New(),
		orderID:         p.OrderID,
		orderNumber:     p.OrderNumber,
		userID:          p.UserID,
		offeringID:      p.OfferingID,
		dateID:          p.DateID,
		withPlasticCard: p.WithPlasticCard,
		status:          ParticipantConfirmed,
		createdAt:       p.Now,
	}, nil
}

func ReconstructParticipant(
	id, orderID uuid.UUID,
	orderNumber string,
	userID, offeringID, dateID uuid.UUID,
	withPlasticCard bool,
	status ParticipantStatus,
	createdAt time.Time,
	cancelledAt *time.Time,
) *Participant {
	return &Participant{
		id:              id,
		orderID:         orderID,
		orderNumber:     orderNumber,
		userID:          userID,
		offeringID:      offeringID,
		dateID:          dateID,
		withPlasticCard: withPlasticCard,
		status:          status,
		createdAt:       createdAt,
		cancelledAt:     cancelledAt,
	}
}

// Cancel reports whether the status changed; a second call is a no-op.
func (p *Participant) Cancel(now time.Time) bool {
	if p.status == ParticipantCancelled {
		return false
	}
	p.status = ParticipantCancelled
	p.cancelledAt = &now
	return true
}

func (p *Participant) ID() uuid.UUID             { return p.id }
func (p *Participant) OrderID() uuid.UUID        { return p.orderID }
func (p *Participant) OrderNumber() string       { return p.orderNumber }
func (p *Participant) UserID() uuid.UUID         { return p.userID }
func (p *Participant) OfferingID() uuid.UUID     { return p.offeringID }
func (p *Participant) DateID() uuid.UUID         { return p.dateID }
func (p *Participant) WithPlasticCard() bool     { return p.withPlasticCard }
func (p *Participant) Status() ParticipantStatus { return p.status }
func (p *Participant) CreatedAt() time.Time      { return p.createdAt }
func (p *Participant) CancelledAt() *time.Time   { return p.cancelledAt }
