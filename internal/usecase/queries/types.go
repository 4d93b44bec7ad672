package queries

import (
	"time"

	"github.com/google/uuid"
)

// OrderView represents read-optimized order data for the buyer and admins
type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          uuid.UUID       `json:"user_id"`
	OrderType       string          `json:"order_type"`
	Status          string          `json:"status"`
	Currency        string          `json:"currency"`
	TotalCents      int64           `json:"total_cents"`
	Items           []OrderItemView `json:"items"`
	BuyerEmail      string          `json:"buyer_email"`
	BuyerName       string          `json:"buyer_name"`
	Practical       *PracticalView  `json:"practical,omitempty"`
	Invoice         *InvoiceView    `json:"invoice,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	AccessExpiresAt *time.Time      `json:"access_expires_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderItemView struct {
	Kind       string    `json:"kind"`
	RefID      uuid.UUID `json:"ref_id"`
	Name       string    `json:"name"`
	NetCents   int64     `json:"net_cents"`
	GrossCents int64     `json:"gross_cents"`
}

type PracticalView struct {
	OfferingID      uuid.UUID `json:"offering_id"`
	DateID          uuid.UUID `json:"date_id"`
	LocationName    string    `json:"location_name"`
	Street          string    `json:"street"`
	City            string    `json:"city"`
	StartsAt        time.Time `json:"starts_at"`
	WithPlasticCard bool      `json:"with_plastic_card"`
}

type InvoiceView struct {
	Number string `json:"number"`
	PDFURL string `json:"pdf_url,omitempty"`
}

// Viewer is the authenticated caller asking for a read.
type Viewer struct {
	UserID  uuid.UUID
	IsAdmin bool
}
