package components

import (
	"log/slog"
	"time"

	"course-checkout/internal/domain/pricing"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/ordernum"
	"course-checkout/internal/usecase"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/queries"
	"course-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewVATResolver,
		fx.As(new(pricing.Resolver)),
	),
	fx.Annotate(
		NewOrderNumbers,
		fx.As(new(ordernum.Generator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewEntitlementManager,
		commands.NewSeatInventory,
		func(s *commands.SeatInventory) commands.ParticipantCommands { return s },
		commands.NewInvoiceIssuer,
		func(i *commands.InvoiceIssuer) commands.InvoiceCommands { return i },
		commands.NewFulfilment,
		NewPaymentReconciler,
		NewCheckoutCommands,
		commands.NewWebhookDispatcher,
		NewSweeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewVATResolver(cfg config.Config) (*pricing.VATResolver, error) {
	return pricing.NewVATResolverFromString(cfg.App.VATRate)
}

func NewOrderNumbers(cfg config.Config) (*ordernum.SnowflakeGenerator, error) {
	return ordernum.NewSnowflakeGenerator(cfg.App.NodeID)
}

func NewPaymentReconciler(
	uow shared.UnitOfWork,
	entitlements *commands.EntitlementManager,
	seats *commands.SeatInventory,
	fulfilment *commands.Fulfilment,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.PaymentReconciler {
	return commands.NewPaymentReconciler(uow, entitlements, seats, fulfilment, clk, cfg.App.AccessWindow, logger)
}

type checkoutDeps struct {
	fx.In

	UoW        shared.UnitOfWork
	Gateway    shared.PaymentGateway
	Resolver   pricing.Resolver
	Numbers    ordernum.Generator
	Tokens     shared.TokenIssuer
	Notifier   shared.Notifier
	Reconciler commands.PaymentReconciler
	ReadStore  queries.OrderReadStore
	Clock      clock.Clock
	Config     config.Config
	Logger     *slog.Logger
}

func NewCheckoutCommands(d checkoutDeps) commands.CheckoutCommands {
	return commands.NewCheckoutCommands(
		d.UoW, d.Gateway, d.Resolver, d.Numbers, d.Tokens, d.Notifier, d.Reconciler, d.ReadStore,
		commands.CheckoutSettings{
			PublicBaseURL: d.Config.App.PublicBaseURL,
			SuccessPath:   d.Config.Payment.SuccessPath,
			CancelPath:    d.Config.Payment.CancelPath,
			Currency:      d.Config.Payment.Currency,
		},
		d.Clock, d.Logger,
	)
}

func NewSweeper(
	uow shared.UnitOfWork,
	notifier shared.Notifier,
	events shared.EventPublisher,
	loc *time.Location,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.SweepCommands {
	return commands.NewSweeper(uow, notifier, events, cfg.App.ReminderLookahead, loc, clk, logger)
}
