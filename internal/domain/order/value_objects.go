package order

import (
	"time"

	"course-checkout/internal/domain/pricing"

	"github.com/google/uuid"
)

// LineItem is a price snapshot taken at checkout; it is never recomputed.
type LineItem struct {
	Kind  ItemKind
	RefID uuid.UUID
	Name  string
	Price pricing.Price
}

// Buyer is a copy of the buyer's contact data at purchase time.
type Buyer struct {
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	Company    string
	Street     string
	PostalCode string
	City       string
	Country    string
}

func (b Buyer) FullName() string {
	if b.LastName == "" {
		return b.FirstName
	}
	return b.FirstName + " " + b.LastName
}

type PracticalDetails struct {
	OfferingID      uuid.UUID
	DateID          uuid.UUID
	LocationName    string
	Street          string
	City            string
	StartsAt        time.Time
	WithPlasticCard bool
}

type Invoice struct {
	ID     string
	Number string
	PDFURL string
}

func (i Invoice) Issued() bool {
	return i.ID != ""
}
