package bootstrap

import (
	"course-checkout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything up to the use cases; shared by the server and opsctl.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	IntegrationsModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	components.HandlerModule,
	SchedulerModule,
)
