package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/getlayar/perks-core/internal/app/middlewares"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/app/pkg"
	"github.com/getlayar/perks-core/internal/app/services"
)

type AccountHandler struct {
	accountService *services.AccountService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAccountHandler(accountService *services.AccountService, authMiddleware *middlewares.AuthMiddleware) *AccountHandler {
	return &AccountHandler{accountService: accountService, authMiddleware: authMiddleware}
}

func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	accountGroup := router.Group("/accounts")

	accountGroup.Post("/", h.authMiddleware.AuthConnect, h.CreateAccount)
	accountGroup.Get("/me", h.authMiddleware.AuthConnect, h.authMiddleware.AuthAccount, h.GetMe)
	accountGroup.Get("/me/points-history", h.authMiddleware.AuthConnect, h.authMiddleware.AuthAccount, h.GetMyPointsHistory)

	adminGroup := accountGroup.Group("/admin", h.authMiddleware.AuthConnect, h.authMiddleware.AuthAdmin)
	adminGroup.Post("/:connect_id/points", h.AdjustPoints)
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	accessToken := c.Get("Authorization")

	account, err := h.accountService.CreateAccount(accessToken)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, account)
}

func (h *AccountHandler) GetMe(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)
	return pkg.SuccessResponse(c, account)
}

func (h *AccountHandler) GetMyPointsHistory(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		limit = 20
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		offset = 0
	}

	entries, err := h.accountService.GetPointsHistory(account.ConnectID.String(), limit, offset)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, entries)
}

func (h *AccountHandler) AdjustPoints(c *fiber.Ctx) error {
	connectId := c.Params("connect_id")

	var req models.PointsAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	account, err := h.accountService.AdjustPoints(connectId, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, account)
}
