package commands

import (
	"context"
	"log/slog"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/pricing"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

type InvoiceCommands interface {
	// RetryInvoice issues the invoice of a paid order whose issuance failed.
	// It refuses when the order already carries an invoice id.
	RetryInvoice(ctx context.Context, orderNumber string) (*order.Invoice, error)
}

// InvoiceIssuer turns a paid order into an invoice at the invoicing API and
// stores the returned identifiers on the order.
type InvoiceIssuer struct {
	uow     shared.UnitOfWork
	client  shared.InvoiceClient
	vatRate string
	clock   clock.Clock
	logger  *slog.Logger
}

func NewInvoiceIssuer(uow shared.UnitOfWork, client shared.InvoiceClient, resolver pricing.Resolver, clk clock.Clock, logger *slog.Logger) *InvoiceIssuer {
	return &InvoiceIssuer{
		uow:     uow,
		client:  client,
		vatRate: resolver.Rate().String(),
		clock:   clk,
		logger:  logger,
	}
}

func (i *InvoiceIssuer) Issue(ctx context.Context, o *order.Order) (order.Invoice, error) {
	if o.Invoice().Issued() {
		return order.Invoice{}, ErrInvoiceExists
	}
	if o.Status() != order.StatusPaid || o.PaidAt() == nil {
		return order.Invoice{}, ErrOrderNotPaid
	}

	issued, err := i.client.CreateInvoice(ctx, invoiceRequest(o, i.vatRate))
	if err != nil {
		return order.Invoice{}, errs.Mark(errs.Wrapf(err, "invoice for %s", o.Number()), ErrInvoiceFailed)
	}

	inv := order.Invoice{ID: issued.ID, Number: issued.Number, PDFURL: issued.PDFURL}
	o.AttachInvoice(inv, i.clock.Now())

	err = i.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		stored, err := tx.Orders().SaveInvoice(ctx, tx.DB(), o)
		if err != nil {
			return err
		}
		if !stored {
			i.logger.Warn("order already had invoice identifiers, new ones not stored",
				"order_number", o.Number(),
				"invoice_id", inv.ID)
		}
		return nil
	})
	if err != nil {
		return inv, errs.Wrapf(err, "store invoice %s for %s", inv.ID, o.Number())
	}

	i.logger.Info("invoice issued", "order_number", o.Number(), "invoice_id", inv.ID, "invoice_number", inv.Number)
	return inv, nil
}

func (i *InvoiceIssuer) RetryInvoice(ctx context.Context, orderNumber string) (*order.Invoice, error) {
	var o *order.Order
	err := i.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = tx.Orders().FindByNumber(ctx, tx.DB(), orderNumber)
		if errs.Is(err, shared.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	inv, err := i.Issue(ctx, o)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// invoiceRequest has one line per order item, so a practical order with the
// card add-on yields two lines.
func invoiceRequest(o *order.Order, vatRate string) shared.InvoiceRequest {
	lines := make([]shared.InvoiceLine, 0, len(o.Items()))
	for _, it := range o.Items() {
		lines = append(lines, shared.InvoiceLine{
			Description: it.Name,
			Quantity:    1,
			NetCents:    it.Price.Net.Cents(),
			GrossCents:  it.Price.Gross.Cents(),
			VATRate:     vatRate,
		})
	}
	return shared.InvoiceRequest{
		OrderNumber: o.Number(),
		Currency:    o.Currency(),
		Buyer:       o.Buyer(),
		Lines:       lines,
		PaidAt:      *o.PaidAt(),
	}
}
