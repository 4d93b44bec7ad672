package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"course-checkout/internal/infra/events"
	"course-checkout/internal/infra/invoicing"
	"course-checkout/internal/infra/mailer"
	"course-checkout/internal/infra/payment"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

// IntegrationsModule wires the external services: payment processor,
// invoicing API, SMTP and the event bus.
var IntegrationsModule = fx.Module("integrations",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *payment.StripeGateway { return payment.NewStripeGateway(cfg.Payment) },
			fx.As(new(shared.PaymentGateway)),
		),
		fx.Annotate(
			func(cfg config.Config) *payment.StripeWebhookVerifier {
				return payment.NewStripeWebhookVerifier(cfg.Payment.WebhookSecret)
			},
			fx.As(new(shared.WebhookVerifier)),
		),
		fx.Annotate(
			func(cfg config.Config) *invoicing.Client { return invoicing.NewClient(cfg.Invoicing) },
			fx.As(new(shared.InvoiceClient)),
		),
		fx.Annotate(
			func(cfg config.Config) *mailer.SMTPSender { return mailer.NewSMTPSender(cfg.Mail) },
			fx.As(new(mailer.Sender)),
		),
		fx.Annotate(
			NewNotifier,
			fx.As(new(shared.Notifier)),
		),
		NewEventPublisher,
	),
)

func NewNotifier(sender mailer.Sender, cfg config.Config, loc *time.Location) *mailer.Notifier {
	return mailer.NewNotifier(sender, cfg.App.PublicBaseURL, loc)
}

type closingPublisher interface {
	shared.EventPublisher
	Close() error
}

// NewEventPublisher falls back to a no-op publisher without brokers.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	var pub closingPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		pub = events.NewKafkaPublisher(cfg.Kafka)
		logger.Info("order events go to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		logger.Info("no kafka brokers configured, order events are dropped")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
