package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/getlayar/perks-core/internal/app/errors"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/app/pkg"
	"github.com/getlayar/perks-core/internal/app/services"
)

type AuthMiddleware struct {
	connectService *services.ConnectService
	accountService *services.AccountService
}

func NewAuthMiddleware(connectService *services.ConnectService, accountService *services.AccountService) *AuthMiddleware {
	return &AuthMiddleware{connectService: connectService, accountService: accountService}
}

func (m *AuthMiddleware) AuthConnect(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}

	token = strings.Replace(token, "Bearer ", "", 1)

	connectUser, err := m.connectService.GetCurrentUser(token)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError(err.Error()))
	}

	c.Locals("connect_user", connectUser)

	return c.Next()
}

func (m *AuthMiddleware) AuthAccount(c *fiber.Ctx) error {
	connectUser, _ := c.Locals("connect_user").(*models.ConnectUser)
	if connectUser == nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("User is not authenticated"))
	}

	account, err := m.accountService.GetAccount(connectUser.ID.String())
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("No points account for this user. Create one first."))
	}

	c.Locals("account", account)

	return c.Next()
}

// AuthAdmin gates admin routes on the identity service's admin claim. Must
// run after AuthConnect.
func (m *AuthMiddleware) AuthAdmin(c *fiber.Ctx) error {
	connectUser, _ := c.Locals("connect_user").(*models.ConnectUser)
	if connectUser == nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("User is not authenticated"))
	}

	if !connectUser.IsAdmin() {
		return pkg.ErrorResponse(c, errors.NewForbiddenError("Admin role required"))
	}

	return c.Next()
}
