package deliveries

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/getlayar/perks-core/internal/app/middlewares"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/app/pkg"
	"github.com/getlayar/perks-core/internal/app/services"
)

type RedemptionHandler struct {
	redemptionService *services.RedemptionService
	authMiddleware    *middlewares.AuthMiddleware
	rateLimit         *middlewares.RateLimitMiddleware
}

func NewRedemptionHandler(redemptionService *services.RedemptionService, authMiddleware *middlewares.AuthMiddleware, rateLimit *middlewares.RateLimitMiddleware) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
		authMiddleware:    authMiddleware,
		rateLimit:         rateLimit,
	}
}

func (h *RedemptionHandler) RegisterRoutes(router fiber.Router) {
	partnerGroup := router.Group("/partners")

	// Partner terminal surface: no user session, codes are the credential
	partnerGroup.Get("/validate-code/:code", h.rateLimit.LimitByIP(middlewares.PartnerTerminalLimit), h.ValidateCode)
	partnerGroup.Post("/mark-used/:code", h.rateLimit.LimitByIP(middlewares.PartnerTerminalLimit), h.MarkUsed)

	// User surface
	partnerGroup.Get("/my-redemptions", h.authMiddleware.AuthConnect, h.authMiddleware.AuthAccount,
		h.rateLimit.LimitByAccount(middlewares.AuthenticatedAPILimit), h.GetMyRedemptions)
	partnerGroup.Post("/:partner_id/redeem", h.authMiddleware.AuthConnect, h.authMiddleware.AuthAccount,
		h.rateLimit.LimitByAccount(middlewares.AuthenticatedAPILimit), h.Redeem)

	// Admin remediation
	adminGroup := partnerGroup.Group("/admin", h.authMiddleware.AuthConnect, h.authMiddleware.AuthAdmin)
	adminGroup.Post("/redemptions/:id/cancel", h.CancelRedemption)
}

func (h *RedemptionHandler) Redeem(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)
	partnerId := c.Params("partner_id")

	var req models.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.redemptionService.Redeem(account.ConnectID.String(), partnerId, req.OfferID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}

func (h *RedemptionHandler) GetMyRedemptions(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	status := c.Query("status")
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		limit = 20
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		offset = 0
	}

	redemptions, err := h.redemptionService.GetRedemptionsByAccount(account.ConnectID.String(), status, limit, offset)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemptions)
}

func (h *RedemptionHandler) ValidateCode(c *fiber.Ctx) error {
	code := c.Params("code")

	redemption, err := h.redemptionService.FindValidRedemption(code)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response := map[string]interface{}{
		"valid":      true,
		"redemption": redemption.Summary(time.Now()),
	}

	return pkg.SuccessResponse(c, response)
}

func (h *RedemptionHandler) MarkUsed(c *fiber.Ctx) error {
	code := c.Params("code")

	var req models.MarkUsedRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	redemption, err := h.redemptionService.MarkAsUsed(code, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption.Summary(time.Now()))
}

func (h *RedemptionHandler) CancelRedemption(c *fiber.Ctx) error {
	id := c.Params("id")

	redemption, err := h.redemptionService.CancelRedemption(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}
