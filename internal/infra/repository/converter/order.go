package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/pricing"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// JSONB documents stored on the orders row. Prices are kept in cents so a
// row can be read back without knowing the VAT rate in force at checkout.
type lineItemDoc struct {
	Kind       string    `json:"kind"`
	RefID      uuid.UUID `json:"ref_id"`
	Name       string    `json:"name"`
	NetCents   int64     `json:"net_cents"`
	GrossCents int64     `json:"gross_cents"`
}

type buyerDoc struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

type practicalDoc struct {
	OfferingID      uuid.UUID `json:"offering_id"`
	DateID          uuid.UUID `json:"date_id"`
	LocationName    string    `json:"location_name"`
	Street          string    `json:"street"`
	City            string    `json:"city"`
	StartsAt        time.Time `json:"starts_at"`
	WithPlasticCard bool      `json:"with_plastic_card"`
}

func OrderToCreateParams(o *order.Order) (sqlc.CreateOrderParams, error) {
	items, err := encodeItems(o.Items())
	if err != nil {
		return sqlc.CreateOrderParams{}, err
	}
	buyer, err := json.Marshal(buyerToDoc(o.Buyer()))
	if err != nil {
		return sqlc.CreateOrderParams{}, fmt.Errorf("encode buyer: %w", err)
	}
	var practical []byte
	if p := o.Practical(); p != nil {
		practical, err = json.Marshal(practicalDoc(*p))
		if err != nil {
			return sqlc.CreateOrderParams{}, fmt.Errorf("encode practical details: %w", err)
		}
	}

	return sqlc.CreateOrderParams{
		ID:               o.ID(),
		OrderNumber:      o.Number(),
		UserID:           o.UserID(),
		OrderType:        o.Type().String(),
		Items:            items,
		TotalAmountCents: o.Total().Cents(),
		Currency:         o.Currency(),
		Status:           o.Status().String(),
		PaymentSessionID: pgconv.StringToPgtype(o.PaymentSessionID()),
		PaymentIntentID:  pgconv.StringToPgtype(o.PaymentIntentID()),
		Buyer:            buyer,
		Practical:        practical,
		CreatedAt:        pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(o.UpdatedAt()),
	}, nil
}

func OrderToStatusParams(o *order.Order, expected order.Status) sqlc.UpdateOrderStatusParams {
	return sqlc.UpdateOrderStatusParams{
		Status:          o.Status().String(),
		PaymentIntentID: pgconv.StringToPgtype(o.PaymentIntentID()),
		PaidAt:          pgconv.TimePtrToPgtype(o.PaidAt()),
		ExpiresAt:       pgconv.TimePtrToPgtype(o.ExpiresAt()),
		CancelledAt:     pgconv.TimePtrToPgtype(o.CancelledAt()),
		UpdatedAt:       pgconv.TimeToPgtype(o.UpdatedAt()),
		ID:              o.ID(),
		ExpectedStatus:  expected.String(),
	}
}

func OrderFromRow(row sqlc.Order) (*order.Order, error) {
	items, err := decodeItems(row.Items)
	if err != nil {
		return nil, err
	}

	var b buyerDoc
	if err := json.Unmarshal(row.Buyer, &b); err != nil {
		return nil, fmt.Errorf("decode buyer: %w", err)
	}

	var practical *order.PracticalDetails
	if len(row.Practical) > 0 && string(row.Practical) != "null" {
		var p practicalDoc
		if err := json.Unmarshal(row.Practical, &p); err != nil {
			return nil, fmt.Errorf("decode practical details: %w", err)
		}
		details := order.PracticalDetails(p)
		practical = &details
	}

	total, err := pricing.NewMoney(row.TotalAmountCents)
	if err != nil {
		return nil, err
	}

	return order.Reconstruct(order.ReconstructParams{
		ID:               row.ID,
		Number:           row.OrderNumber,
		UserID:           row.UserID,
		Type:             order.Type(row.OrderType),
		Items:            items,
		Total:            total,
		Currency:         row.Currency,
		Status:           order.Status(row.Status),
		PaymentSessionID: pgconv.StringFromPgtype(row.PaymentSessionID),
		PaymentIntentID:  pgconv.StringFromPgtype(row.PaymentIntentID),
		Buyer:            order.Buyer(b),
		Practical:        practical,
		Invoice: order.Invoice{
			ID:     pgconv.StringFromPgtype(row.InvoiceID),
			Number: pgconv.StringFromPgtype(row.InvoiceNumber),
			PDFURL: pgconv.StringFromPgtype(row.InvoicePdfUrl),
		},
		PaidAt:      pgconv.TimePtrFromPgtype(row.PaidAt),
		ExpiresAt:   pgconv.TimePtrFromPgtype(row.ExpiresAt),
		CancelledAt: pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func buyerToDoc(b order.Buyer) buyerDoc {
	return buyerDoc(b)
}

func encodeItems(items []order.LineItem) ([]byte, error) {
	docs := make([]lineItemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, lineItemDoc{
			Kind:       string(it.Kind),
			RefID:      it.RefID,
			Name:       it.Name,
			NetCents:   it.Price.Net.Cents(),
			GrossCents: it.Price.Gross.Cents(),
		})
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return b, nil
}

func decodeItems(raw []byte) ([]order.LineItem, error) {
	var docs []lineItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	items := make([]order.LineItem, 0, len(docs))
	for _, d := range docs {
		net, err := pricing.NewMoney(d.NetCents)
		if err != nil {
			return nil, err
		}
		gross, err := pricing.NewMoney(d.GrossCents)
		if err != nil {
			return nil, err
		}
		items = append(items, order.LineItem{
			Kind:  order.ItemKind(d.Kind),
			RefID: d.RefID,
			Name:  d.Name,
			Price: pricing.Price{Net: net, Gross: gross},
		})
	}
	return items, nil
}
