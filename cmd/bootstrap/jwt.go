package bootstrap

import (
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/jwt"
	"course-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		func(s *jwt.Service) shared.TokenIssuer { return s },
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) *jwt.Service {
	if cfg.JWT.Duration <= 0 {
		panic("invalid JWT_DURATION: must be positive")
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration, clk)
}
