package repository

import (
	"context"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/repository/converter"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type OrderQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	GetOrderByNumber(ctx context.Context, db sqlc.DBTX, orderNumber string) (sqlc.Order, error)
	GetOrderBySessionID(ctx context.Context, db sqlc.DBTX, paymentSessionID pgtype.Text) (sqlc.Order, error)
	GetOrderByPaymentIntentID(ctx context.Context, db sqlc.DBTX, paymentIntentID pgtype.Text) (sqlc.Order, error)
	SetOrderPaymentSession(ctx context.Context, db sqlc.DBTX, arg sqlc.SetOrderPaymentSessionParams) (int64, error)
	UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error)
	SetOrderInvoice(ctx context.Context, db sqlc.DBTX, arg sqlc.SetOrderInvoiceParams) (int64, error)
	ExpirePaidOnlineOrders(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]string, error)
}

type OrderRepository struct {
	queries OrderQueries
}

func NewOrderRepository(queries OrderQueries) *OrderRepository {
	return &OrderRepository{queries: queries}
}

func (r *OrderRepository) Create(ctx context.Context, db sqlc.DBTX, o *order.Order) error {
	params, err := converter.OrderToCreateParams(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order", err)
	}
	if err := r.queries.CreateOrder(ctx, db, params); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("order number already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, db sqlc.DBTX, number string) (*order.Order, error) {
	row, err := r.queries.GetOrderByNumber(ctx, db, number)
	return toOrder(row, err, "order number")
}

func (r *OrderRepository) FindBySessionID(ctx context.Context, db sqlc.DBTX, sessionID string) (*order.Order, error) {
	if sessionID == "" {
		return nil, infra.WrapRepoErr("order not found by payment session", nil, infra.KindNotFound)
	}
	row, err := r.queries.GetOrderBySessionID(ctx, db, pgconv.StringToPgtype(sessionID))
	return toOrder(row, err, "payment session")
}

func (r *OrderRepository) FindByPaymentIntentID(ctx context.Context, db sqlc.DBTX, paymentIntentID string) (*order.Order, error) {
	if paymentIntentID == "" {
		return nil, infra.WrapRepoErr("order not found by payment intent", nil, infra.KindNotFound)
	}
	row, err := r.queries.GetOrderByPaymentIntentID(ctx, db, pgconv.StringToPgtype(paymentIntentID))
	return toOrder(row, err, "payment intent")
}

func (r *OrderRepository) AttachPaymentSession(ctx context.Context, db sqlc.DBTX, o *order.Order) error {
	n, err := r.queries.SetOrderPaymentSession(ctx, db, sqlc.SetOrderPaymentSessionParams{
		ID:               o.ID(),
		PaymentSessionID: pgconv.StringToPgtype(o.PaymentSessionID()),
		UpdatedAt:        pgconv.TimeToPgtype(o.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to attach payment session", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("order already bound to another payment session", nil, infra.KindConflict)
	}
	return nil
}

func (r *OrderRepository) SaveTransition(ctx context.Context, db sqlc.DBTX, o *order.Order, expected order.Status) (bool, error) {
	n, err := r.queries.UpdateOrderStatus(ctx, db, converter.OrderToStatusParams(o, expected))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update order status", err)
	}
	return n == 1, nil
}

func (r *OrderRepository) SaveInvoice(ctx context.Context, db sqlc.DBTX, o *order.Order) (bool, error) {
	inv := o.Invoice()
	n, err := r.queries.SetOrderInvoice(ctx, db, sqlc.SetOrderInvoiceParams{
		ID:            o.ID(),
		InvoiceID:     pgconv.StringToPgtype(inv.ID),
		InvoiceNumber: pgconv.StringToPgtype(inv.Number),
		InvoicePdfUrl: pgconv.StringToPgtype(inv.PDFURL),
		UpdatedAt:     pgconv.TimeToPgtype(o.UpdatedAt()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to store invoice reference", err)
	}
	return n == 1, nil
}

func (r *OrderRepository) ExpireDueOnline(ctx context.Context, db sqlc.DBTX, now time.Time) ([]string, error) {
	numbers, err := r.queries.ExpirePaidOnlineOrders(ctx, db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire online orders", err)
	}
	return numbers, nil
}

func toOrder(row sqlc.Order, err error, by string) (*order.Order, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found by "+by, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by "+by, err)
	}
	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored order is invalid", err, infra.KindCorruptRow)
	}
	return o, nil
}
