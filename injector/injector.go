//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"

	"github.com/getlayar/perks-core/internal/app/deliveries"
	"github.com/getlayar/perks-core/internal/app/middlewares"
	"github.com/getlayar/perks-core/internal/app/services"
	"github.com/getlayar/perks-core/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("perks"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewConnectService,
	services.NewAccountService,
	services.NewPartnerService,
	services.NewRedemptionService,
	services.NewAnalyticsService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAccountHandler,
	deliveries.NewPartnerHandler,
	deliveries.NewRedemptionHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
