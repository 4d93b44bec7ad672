package builder

import (
	"testing"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var BaseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type OrderBuilder struct {
	Number    string
	UserID    uuid.UUID
	Type      order.Type
	Currency  string
	Buyer     order.Buyer
	Items     []order.LineItem
	Practical *order.PracticalDetails
	Now       time.Time
}

// NewOnlineOrderBuilder yields one course at net 49.00 / gross 58.31.
func NewOnlineOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		Number:   "ORD-" + uuid.NewString()[:8],
		UserID:   uuid.New(),
		Type:     order.TypeOnline,
		Currency: "eur",
		Buyer:    DefaultBuyer(),
		Items: []order.LineItem{{
			Kind:  order.ItemCourse,
			RefID: uuid.New(),
			Name:  "Online first aid course",
			Price: pricing.Price{Net: pricing.MustMoney(4900), Gross: pricing.MustMoney(5831)},
		}},
		Now: BaseTime,
	}
}

// NewPracticalOrderBuilder yields a seat plus the plastic card add-on.
func NewPracticalOrderBuilder() *OrderBuilder {
	offeringID := uuid.New()
	return &OrderBuilder{
		Number:   "ORD-" + uuid.NewString()[:8],
		UserID:   uuid.New(),
		Type:     order.TypePractical,
		Currency: "eur",
		Buyer:    DefaultBuyer(),
		Items: []order.LineItem{
			{
				Kind:  order.ItemPracticalSeat,
				RefID: offeringID,
				Name:  "Practical training Berlin",
				Price: pricing.Price{Net: pricing.MustMoney(24900), Gross: pricing.MustMoney(29631)},
			},
			{
				Kind:  order.ItemPlasticCard,
				RefID: offeringID,
				Name:  "Plastic certificate card",
				Price: pricing.Price{Net: pricing.MustMoney(1000), Gross: pricing.MustMoney(1190)},
			},
		},
		Practical: &order.PracticalDetails{
			OfferingID:      offeringID,
			DateID:          uuid.New(),
			LocationName:    "Training Center Mitte",
			Street:          "Invalidenstr. 1",
			City:            "Berlin",
			StartsAt:        BaseTime.Add(14 * 24 * time.Hour),
			WithPlasticCard: true,
		},
		Now: BaseTime,
	}
}

func DefaultBuyer() order.Buyer {
	return order.Buyer{
		Email:      "anna@example.com",
		FirstName:  "Anna",
		LastName:   "Schmidt",
		Street:     "Hauptstr. 5",
		PostalCode: "10115",
		City:       "Berlin",
		Country:    "DE",
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(order.NewOrderParams{
		Number:    b.Number,
		UserID:    b.UserID,
		Type:      b.Type,
		Items:     b.Items,
		Currency:  b.Currency,
		Buyer:     b.Buyer,
		Practical: b.Practical,
		Now:       b.Now,
	})
}

func (b *OrderBuilder) MustBuild(t testing.TB) *order.Order {
	t.Helper()
	o, err := b.BuildDomain()
	require.NoError(t, err)
	return o
}
