package commands

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"course-checkout/internal/domain/booking"
	"course-checkout/internal/domain/order"
	"course-checkout/internal/domain/pricing"
	"course-checkout/internal/domain/user"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/pkg/ordernum"
	"course-checkout/internal/pkg/password"
	"course-checkout/internal/usecase/queries"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

const generatedPasswordLength = 16

// CheckoutInput is the buyer and order intent of one checkout call.
type CheckoutInput struct {
	// AuthUserID is set when the caller sent a valid bearer token.
	AuthUserID *uuid.UUID

	Email      string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	Company    string
	Street     string
	PostalCode string
	City       string
	Country    string

	OrderType       string
	CourseID        uuid.UUID
	OfferingID      uuid.UUID
	DateID          uuid.UUID
	WithPlasticCard bool
}

type CheckoutResult struct {
	OrderNumber string
	SessionID   string
	SessionURL  string
	// Token is empty when the email belongs to an existing account the
	// caller did not authenticate as.
	Token      string
	NewAccount bool
	TotalCents int64
	Currency   string
}

type SessionVerification struct {
	SessionID     string
	PaymentStatus string
	Order         *queries.OrderView
}

type CheckoutSettings struct {
	PublicBaseURL string
	SuccessPath   string
	CancelPath    string
	Currency      string
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	VerifySession(ctx context.Context, sessionID string) (*SessionVerification, error)
}

type checkoutImpl struct {
	uow        shared.UnitOfWork
	gateway    shared.PaymentGateway
	resolver   pricing.Resolver
	numbers    ordernum.Generator
	tokens     shared.TokenIssuer
	notifier   shared.Notifier
	reconciler PaymentReconciler
	readStore  queries.OrderReadStore
	settings   CheckoutSettings
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	resolver pricing.Resolver,
	numbers ordernum.Generator,
	tokens shared.TokenIssuer,
	notifier shared.Notifier,
	reconciler PaymentReconciler,
	readStore queries.OrderReadStore,
	settings CheckoutSettings,
	clk clock.Clock,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutImpl{
		uow:        uow,
		gateway:    gateway,
		resolver:   resolver,
		numbers:    numbers,
		tokens:     tokens,
		notifier:   notifier,
		reconciler: reconciler,
		readStore:  readStore,
		settings:   settings,
		clock:      clk,
		logger:     logger,
	}
}

type buyerAccount struct {
	user       *user.User
	isNew      bool
	authorized bool
}

// Checkout creates a pending order and opens a hosted payment session for it.
// Every call creates a new order; abandoned ones stay pending.
func (c *checkoutImpl) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	email, contact, orderType, err := validateCheckout(in)
	if err != nil {
		return nil, err
	}

	var (
		o       *order.Order
		account buyerAccount
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()

		var err error
		account, err = c.resolveBuyer(ctx, tx, in, email, contact)
		if err != nil {
			return err
		}

		items, practical, err := c.buildItems(ctx, tx, in, orderType)
		if err != nil {
			return err
		}

		o, err = order.NewOrder(order.NewOrderParams{
			Number:    c.numbers.Next(),
			UserID:    account.user.ID(),
			Type:      orderType,
			Items:     items,
			Currency:  c.settings.Currency,
			Buyer:     buyerSnapshot(account.user.Email(), contact),
			Practical: practical,
			Now:       now,
		})
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.Orders().Create(ctx, tx.DB(), o)
	})
	if err != nil {
		return nil, err
	}

	log := c.logger.With("order_number", o.Number(), "user_id", o.UserID())
	log.Info("pending order created", "order_type", o.Type().String(), "total", o.Total().String())

	session, err := c.gateway.CreateCheckoutSession(ctx, c.sessionInput(o))
	if err != nil {
		log.Error("failed to open payment session", "error", err.Error())
		c.abandon(ctx, o)
		return nil, errs.Mark(err, ErrPaymentUnavailable)
	}

	if err := o.AttachPaymentSession(session.ID, c.clock.Now()); err != nil {
		return nil, err
	}
	// The webhook locates the order through metadata, so a failure here only
	// costs the session-id fallback.
	err = c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().AttachPaymentSession(ctx, tx.DB(), o)
	})
	if err != nil {
		log.Error("failed to store payment session id", "session_id", session.ID, "error", err.Error())
	}

	result := &CheckoutResult{
		OrderNumber: o.Number(),
		SessionID:   session.ID,
		SessionURL:  session.URL,
		NewAccount:  account.isNew,
		TotalCents:  o.Total().Cents(),
		Currency:    o.Currency(),
	}
	if account.isNew || account.authorized {
		token, err := c.tokens.GenerateToken(account.user.ID(), account.user.Role())
		if err != nil {
			return nil, errs.Mark(err, ErrTokenGeneration)
		}
		result.Token = token
	}

	if account.isNew {
		if err := c.notifier.SendWelcome(ctx, account.user); err != nil {
			log.Error("failed to send welcome email", "error", err.Error())
		}
	}
	return result, nil
}

func validateCheckout(in CheckoutInput) (user.Email, user.Contact, order.Type, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return user.Email{}, user.Contact{}, "", newValidationError("email", "must be a valid email address")
	}

	contact, err := user.Contact{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Company:    in.Company,
		Street:     in.Street,
		PostalCode: in.PostalCode,
		City:       in.City,
		Country:    in.Country,
	}.Normalize()
	if err != nil {
		field := "lastName"
		if strings.TrimSpace(in.FirstName) == "" {
			field = "firstName"
		}
		return user.Email{}, user.Contact{}, "", newValidationError(field, "is required")
	}

	if in.Password != "" {
		if _, err := user.NewPassword(in.Password); err != nil {
			return user.Email{}, user.Contact{}, "", newValidationError("password", err.Error())
		}
	}

	orderType := order.Type(in.OrderType)
	switch orderType {
	case order.TypeOnline:
		if in.CourseID == uuid.Nil {
			return user.Email{}, user.Contact{}, "", newValidationError("courseId", "is required for online orders")
		}
	case order.TypePractical:
		if in.OfferingID == uuid.Nil {
			return user.Email{}, user.Contact{}, "", newValidationError("offeringId", "is required for practical orders")
		}
		if in.DateID == uuid.Nil {
			return user.Email{}, user.Contact{}, "", newValidationError("dateId", "is required for practical orders")
		}
	default:
		return user.Email{}, user.Contact{}, "", newValidationError("orderType", "must be online or practical")
	}
	return email, contact, orderType, nil
}

// resolveBuyer finds or creates the buyer account. Contact fields of an
// existing account are only refreshed when the caller proved ownership; the
// password and email are never changed here.
func (c *checkoutImpl) resolveBuyer(ctx context.Context, tx shared.Tx, in CheckoutInput, email user.Email, contact user.Contact) (buyerAccount, error) {
	now := c.clock.Now()

	if in.AuthUserID != nil {
		u, err := tx.Users().FindByID(ctx, tx.DB(), *in.AuthUserID)
		if err != nil {
			if errs.Is(err, shared.ErrRecordNotFound) {
				return buyerAccount{}, ErrBuyerNotFound
			}
			return buyerAccount{}, err
		}
		u.UpdateContact(contact, now)
		if err := tx.Users().UpdateContact(ctx, tx.DB(), u); err != nil {
			return buyerAccount{}, err
		}
		return buyerAccount{user: u, authorized: true}, nil
	}

	u, err := tx.Users().FindByEmail(ctx, tx.DB(), email)
	switch {
	case err == nil:
		if in.Password == "" || password.ComparePassword(u.PasswordHash(), in.Password) != nil {
			return buyerAccount{user: u}, nil
		}
		u.UpdateContact(contact, now)
		if err := tx.Users().UpdateContact(ctx, tx.DB(), u); err != nil {
			return buyerAccount{}, err
		}
		return buyerAccount{user: u, authorized: true}, nil
	case !errs.Is(err, shared.ErrRecordNotFound):
		return buyerAccount{}, err
	}

	plain := in.Password
	if plain == "" {
		if plain, err = password.RandomPassword(generatedPasswordLength); err != nil {
			return buyerAccount{}, err
		}
	}
	hash, err := password.HashPassword(plain)
	if err != nil {
		return buyerAccount{}, err
	}
	u = user.NewUser(email, hash, user.RoleCustomer, contact, now)
	if err := tx.Users().Create(ctx, tx.DB(), u); err != nil {
		if errs.Is(err, shared.ErrDuplicateRecord) {
			// Concurrent checkout with the same email won the insert.
			existing, findErr := tx.Users().FindByEmail(ctx, tx.DB(), email)
			if findErr != nil {
				return buyerAccount{}, findErr
			}
			return buyerAccount{user: existing}, nil
		}
		return buyerAccount{}, err
	}
	return buyerAccount{user: u, isNew: true}, nil
}

func (c *checkoutImpl) buildItems(ctx context.Context, tx shared.Tx, in CheckoutInput, t order.Type) ([]order.LineItem, *order.PracticalDetails, error) {
	if t == order.TypeOnline {
		course, err := tx.Catalog().CourseByID(ctx, tx.DB(), in.CourseID)
		if err != nil {
			if errs.Is(err, shared.ErrRecordNotFound) {
				return nil, nil, ErrCourseNotFound
			}
			return nil, nil, err
		}
		if !course.IsActive {
			return nil, nil, ErrCourseNotFound
		}
		return []order.LineItem{{
			Kind:  order.ItemCourse,
			RefID: course.ID,
			Name:  course.Title,
			Price: c.resolver.Resolve(course.NetPrice),
		}}, nil, nil
	}

	offering, err := tx.Catalog().OfferingByID(ctx, tx.DB(), in.OfferingID)
	if err != nil {
		if errs.Is(err, shared.ErrRecordNotFound) {
			return nil, nil, ErrOfferingNotFound
		}
		return nil, nil, err
	}
	slot, err := offering.BookableSlot(in.DateID, c.clock.Now())
	switch {
	case errs.Is(err, booking.ErrSlotNotFound):
		return nil, nil, ErrSlotNotFound
	case errs.Is(err, booking.ErrSlotInThePast):
		return nil, nil, ErrSlotStarted
	case err != nil:
		return nil, nil, err
	}
	// Only a pre-check: the seat is taken when the payment is confirmed.
	if !slot.HasCapacity() {
		return nil, nil, ErrSlotSoldOut
	}

	items := []order.LineItem{{
		Kind:  order.ItemPracticalSeat,
		RefID: offering.ID,
		Name:  offering.Title,
		Price: c.resolver.Resolve(offering.SeatPrice),
	}}
	if in.WithPlasticCard {
		items = append(items, order.LineItem{
			Kind:  order.ItemPlasticCard,
			RefID: offering.ID,
			Name:  offering.PlasticCardName,
			Price: c.resolver.Resolve(offering.PlasticCardNet),
		})
	}
	return items, &order.PracticalDetails{
		OfferingID:      offering.ID,
		DateID:          slot.ID,
		LocationName:    offering.Location.Name,
		Street:          offering.Location.Street,
		City:            offering.Location.City,
		StartsAt:        slot.StartsAt,
		WithPlasticCard: in.WithPlasticCard,
	}, nil
}

func buyerSnapshot(email user.Email, c user.Contact) order.Buyer {
	return order.Buyer{
		Email:      email.Value(),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      c.Phone,
		Company:    c.Company,
		Street:     c.Street,
		PostalCode: c.PostalCode,
		City:       c.City,
		Country:    c.Country,
	}
}

// sessionInput puts everything the reconciler needs into the session
// metadata, so an event can be applied even before the session id is stored.
func (c *checkoutImpl) sessionInput(o *order.Order) shared.CheckoutSessionInput {
	meta := map[string]string{
		shared.MetaOrderNumber: o.Number(),
		shared.MetaOrderType:   o.Type().String(),
		shared.MetaUserID:      o.UserID().String(),
	}
	if p := o.Practical(); p != nil {
		meta[shared.MetaOfferingID] = p.OfferingID.String()
		meta[shared.MetaDateID] = p.DateID.String()
		meta[shared.MetaWithPlasticCard] = strconv.FormatBool(p.WithPlasticCard)
	} else {
		ids := make([]string, 0, len(o.CourseIDs()))
		for _, id := range o.CourseIDs() {
			ids = append(ids, id.String())
		}
		meta[shared.MetaCourseIDs] = strings.Join(ids, ",")
	}

	items := make([]shared.PaymentLineItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, shared.PaymentLineItem{
			Name:        it.Name,
			AmountCents: it.Price.Gross.Cents(),
			Quantity:    1,
		})
	}

	base := strings.TrimRight(c.settings.PublicBaseURL, "/")
	return shared.CheckoutSessionInput{
		OrderNumber:   o.Number(),
		CustomerEmail: o.Buyer().Email,
		Currency:      o.Currency(),
		Items:         items,
		Metadata:      meta,
		SuccessURL:    base + c.settings.SuccessPath + "?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     base + c.settings.CancelPath + "?order=" + url.QueryEscape(o.Number()),
	}
}

// abandon cancels an order whose session could not be opened.
func (c *checkoutImpl) abandon(ctx context.Context, o *order.Order) {
	if err := o.Cancel(c.clock.Now()); err != nil {
		return
	}
	err := c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Orders().SaveTransition(ctx, tx.DB(), o, order.StatusPending)
		return err
	})
	if err != nil {
		c.logger.Error("failed to cancel abandoned order", "order_number", o.Number(), "error", err.Error())
	}
}

// VerifySession asks the processor for the session state. When the processor
// already reports the payment while the order is still pending, the payment
// is confirmed here instead of waiting for the webhook.
func (c *checkoutImpl) VerifySession(ctx context.Context, sessionID string) (*SessionVerification, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, newValidationError("sessionId", "is required")
	}

	state, err := c.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		if errs.Is(err, shared.ErrPaymentSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, errs.Mark(err, ErrPaymentUnavailable)
	}

	var o *order.Order
	err = c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = locateOrder(ctx, tx, byNumber(state.OrderNumber), bySession(sessionID))
		return err
	})
	if err != nil {
		return nil, err
	}

	paid := state.PaymentStatus == shared.PaymentStatusPaid || state.PaymentStatus == shared.PaymentStatusNoPaymentRequired
	if paid && o.Status() == order.StatusPending {
		outcome, err := c.reconciler.ConfirmPayment(ctx, PaymentRef{
			OrderNumber:     o.Number(),
			SessionID:       sessionID,
			PaymentIntentID: state.PaymentIntentID,
		})
		if err != nil {
			return nil, err
		}
		c.logger.Info("payment confirmed through session verification",
			"order_number", o.Number(),
			"session_id", sessionID,
			"outcome", string(outcome))
	}

	view, err := c.readStore.FindByNumber(ctx, o.Number())
	if err != nil {
		return nil, err
	}
	return &SessionVerification{
		SessionID:     sessionID,
		PaymentStatus: string(state.PaymentStatus),
		Order:         view,
	}, nil
}
