package components

import (
	"course-checkout/internal/handler"
	"course-checkout/internal/handler/api"
	"course-checkout/internal/handler/middleware"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cmds commands.CheckoutCommands, cfg config.Config) *api.CheckoutHandler {
			return api.NewCheckoutHandler(cmds, cfg.JWT.Duration)
		},
		api.NewWebhookHandler,
		api.NewOrderHandler,
		api.NewParticipantHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
