package response

import (
	"time"

	"course-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	OrderType       string              `json:"orderType"`
	Status          string              `json:"status"`
	Currency        string              `json:"currency"`
	TotalCents      int64               `json:"totalCents"`
	Items           []OrderItemResponse `json:"items"`
	BuyerEmail      string              `json:"buyerEmail"`
	BuyerName       string              `json:"buyerName"`
	Practical       *PracticalResponse  `json:"practical,omitempty"`
	Invoice         *InvoiceResponse    `json:"invoice,omitempty"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	AccessExpiresAt *time.Time          `json:"accessExpiresAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type OrderItemResponse struct {
	Kind       string    `json:"kind"`
	RefID      uuid.UUID `json:"refId"`
	Name       string    `json:"name"`
	NetCents   int64     `json:"netCents"`
	GrossCents int64     `json:"grossCents"`
}

type PracticalResponse struct {
	OfferingID      uuid.UUID `json:"offeringId"`
	DateID          uuid.UUID `json:"dateId"`
	LocationName    string    `json:"locationName"`
	Street          string    `json:"street"`
	City            string    `json:"city"`
	StartsAt        time.Time `json:"startsAt"`
	WithPlasticCard bool      `json:"withPlasticCard"`
}

type InvoiceResponse struct {
	Number string `json:"number"`
	PDFURL string `json:"pdfUrl,omitempty"`
}

// FromOrderView copies the read view field by field; both sides share names.
func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	var resp OrderResponse
	if err := copier.CopyWithOption(&resp, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []OrderItemResponse{}
	}
	return &resp, nil
}
