package injector

import (
	"github.com/gofiber/fiber/v2"

	"github.com/getlayar/perks-core/internal/app/deliveries"
	"github.com/getlayar/perks-core/internal/app/middlewares"
)

// Application is the assembled service container.
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AccountHandler      *deliveries.AccountHandler
	PartnerHandler      *deliveries.PartnerHandler
	RedemptionHandler   *deliveries.RedemptionHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes on a Fiber router.
// Static partner routes must land before the parameterized redeem route, so
// the partner handler registers first.
func (app *Application) RegisterRoutes(router fiber.Router) {
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	app.HealthHandler.RegisterRoutes(router)
	app.AccountHandler.RegisterRoutes(router)
	app.PartnerHandler.RegisterRoutes(router)
	app.RedemptionHandler.RegisterRoutes(router)
}
