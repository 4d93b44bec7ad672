package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/user"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

const dateLayout = "02.01.2006 15:04"

// Notifier renders buyer emails and hands them to a Sender.
type Notifier struct {
	sender    Sender
	baseURL   string
	loc       *time.Location
	templates map[string]*template.Template
}

func NewNotifier(sender Sender, baseURL string, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		sender:    sender,
		baseURL:   strings.TrimRight(baseURL, "/"),
		loc:       loc,
		templates: parseTemplates(),
	}
}

type itemLine struct {
	Name  string
	Gross string
}

func (n *Notifier) SendWelcome(ctx context.Context, u *user.User) error {
	return n.send(ctx, u.Email().Value(), "Welcome to your course account", "welcome", map[string]any{
		"FirstName": u.Contact().FirstName,
		"Email":     u.Email().Value(),
		"BaseURL":   n.baseURL,
	})
}

func (n *Notifier) SendPurchaseConfirmation(ctx context.Context, o *order.Order) error {
	data := n.orderData(o)
	if exp := o.ExpiresAt(); exp != nil {
		data["AccessUntil"] = exp.In(n.loc).Format(dateLayout)
	}
	return n.send(ctx, o.Buyer().Email, fmt.Sprintf("Order confirmation %s", o.Number()), "purchase", data)
}

func (n *Notifier) SendBookingConfirmation(ctx context.Context, o *order.Order) error {
	p := o.Practical()
	if p == nil {
		return errs.Newf("order %s has no practical details", o.Number())
	}
	data := n.orderData(o)
	data["LocationName"] = p.LocationName
	data["Street"] = p.Street
	data["City"] = p.City
	data["StartsAt"] = p.StartsAt.In(n.loc).Format(dateLayout)
	data["WithPlasticCard"] = p.WithPlasticCard
	return n.send(ctx, o.Buyer().Email, fmt.Sprintf("Booking confirmation %s", o.Number()), "booking", data)
}

func (n *Notifier) SendExpiryReminder(ctx context.Context, r shared.ExpiryReminder) error {
	return n.send(ctx, r.Email, fmt.Sprintf("Your access to %s expires soon", r.CourseTitle), "expiry", map[string]any{
		"FirstName":   r.FirstName,
		"CourseTitle": r.CourseTitle,
		"ExpiresAt":   r.ExpiresAt.In(n.loc).Format(dateLayout),
		"BaseURL":     n.baseURL,
	})
}

func (n *Notifier) SendPracticalReminder(ctx context.Context, r shared.PracticalReminder) error {
	return n.send(ctx, r.Email, fmt.Sprintf("Reminder: %s tomorrow", r.OfferingTitle), "practical", map[string]any{
		"FirstName":     r.FirstName,
		"OfferingTitle": r.OfferingTitle,
		"LocationName":  r.LocationName,
		"Street":        r.Street,
		"City":          r.City,
		"StartsAt":      r.StartsAt.In(n.loc).Format(dateLayout),
		"OrderNumber":   r.OrderNumber,
	})
}

func (n *Notifier) orderData(o *order.Order) map[string]any {
	items := make([]itemLine, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, itemLine{Name: it.Name, Gross: it.Price.Gross.String()})
	}
	return map[string]any{
		"FirstName":   o.Buyer().FirstName,
		"OrderNumber": o.Number(),
		"Items":       items,
		"Total":       o.Total().String(),
		"Currency":    strings.ToUpper(o.Currency()),
		"BaseURL":     n.baseURL,
	}
}

func (n *Notifier) send(ctx context.Context, to, subject, name string, data map[string]any) error {
	if to == "" {
		return errs.New("email recipient is empty")
	}
	var buf bytes.Buffer
	if err := n.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		return errs.Wrapf(err, "render %s email", name)
	}
	return n.sender.Send(ctx, Message{To: to, Subject: subject, HTML: buf.String()})
}
