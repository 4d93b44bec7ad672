package readstore

import (
	"context"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/repository/converter"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"
	"course-checkout/internal/usecase/queries"
)

type OrderReadQueries interface {
	GetOrderByNumber(ctx context.Context, db sqlc.DBTX, orderNumber string) (sqlc.Order, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByNumber(ctx context.Context, orderNumber string) (*queries.OrderView, error) {
	row, err := r.queries.GetOrderByNumber(ctx, r.db, orderNumber)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored order is invalid", err, infra.KindCorruptRow)
	}
	return toOrderView(o), nil
}

func toOrderView(o *order.Order) *queries.OrderView {
	buyer := o.Buyer()
	v := &queries.OrderView{
		ID:          o.ID(),
		OrderNumber: o.Number(),
		UserID:      o.UserID(),
		OrderType:   o.Type().String(),
		Status:      o.Status().String(),
		Currency:    o.Currency(),
		TotalCents:  o.Total().Cents(),
		BuyerEmail:  buyer.Email,
		BuyerName:   buyer.FullName(),
		PaidAt:      o.PaidAt(),
		CancelledAt: o.CancelledAt(),
		CreatedAt:   o.CreatedAt(),
	}

	if o.Type() == order.TypeOnline {
		v.AccessExpiresAt = o.ExpiresAt()
	}

	v.Items = make([]queries.OrderItemView, 0, len(o.Items()))
	for _, it := range o.Items() {
		v.Items = append(v.Items, queries.OrderItemView{
			Kind:       string(it.Kind),
			RefID:      it.RefID,
			Name:       it.Name,
			NetCents:   it.Price.Net.Cents(),
			GrossCents: it.Price.Gross.Cents(),
		})
	}

	if p := o.Practical(); p != nil {
		v.Practical = &queries.PracticalView{
			OfferingID:      p.OfferingID,
			DateID:          p.DateID,
			LocationName:    p.LocationName,
			Street:          p.Street,
			City:            p.City,
			StartsAt:        p.StartsAt,
			WithPlasticCard: p.WithPlasticCard,
		}
	}

	if inv := o.Invoice(); inv.Issued() {
		v.Invoice = &queries.InvoiceView{Number: inv.Number, PDFURL: inv.PDFURL}
	}

	return v
}
