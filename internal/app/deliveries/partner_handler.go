package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/getlayar/perks-core/internal/app/middlewares"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/app/pkg"
	"github.com/getlayar/perks-core/internal/app/services"
)

type PartnerHandler struct {
	partnerService   *services.PartnerService
	analyticsService *services.AnalyticsService
	authMiddleware   *middlewares.AuthMiddleware
}

func NewPartnerHandler(partnerService *services.PartnerService, analyticsService *services.AnalyticsService, authMiddleware *middlewares.AuthMiddleware) *PartnerHandler {
	return &PartnerHandler{
		partnerService:   partnerService,
		analyticsService: analyticsService,
		authMiddleware:   authMiddleware,
	}
}

func (h *PartnerHandler) RegisterRoutes(router fiber.Router) {
	partnerGroup := router.Group("/partners")

	// Public catalog
	partnerGroup.Get("/", h.ListActivePartners)
	partnerGroup.Get("/categories", h.GetCategories)

	// Admin catalog management
	adminGroup := partnerGroup.Group("/admin", h.authMiddleware.AuthConnect, h.authMiddleware.AuthAdmin)
	adminGroup.Post("/", h.CreatePartner)
	adminGroup.Get("/", h.ListPartners)
	adminGroup.Patch("/:id", h.UpdatePartner)
	adminGroup.Delete("/:id", h.DeletePartner)
	adminGroup.Post("/:id/offers", h.AddOffer)
	adminGroup.Patch("/:id/offers/:offer_id", h.UpdateOffer)
	adminGroup.Get("/:id/analytics", h.GetPartnerAnalytics)
}

func (h *PartnerHandler) ListActivePartners(c *fiber.Ctx) error {
	partners, err := h.partnerService.ListActivePartners()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, partners)
}

func (h *PartnerHandler) GetCategories(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, models.PartnerCategories)
}

func (h *PartnerHandler) ListPartners(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		limit = 20
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		offset = 0
	}

	partners, err := h.partnerService.ListPartners(limit, offset)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, partners)
}

func (h *PartnerHandler) CreatePartner(c *fiber.Ctx) error {
	var req models.PartnerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	partner, err := h.partnerService.CreatePartner(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, partner)
}

func (h *PartnerHandler) UpdatePartner(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.PartnerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	partner, err := h.partnerService.UpdatePartner(id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, partner)
}

func (h *PartnerHandler) DeletePartner(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.partnerService.DeletePartner(id); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}

func (h *PartnerHandler) AddOffer(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.OfferCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	offer, err := h.partnerService.AddOffer(id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, offer)
}

func (h *PartnerHandler) UpdateOffer(c *fiber.Ctx) error {
	id := c.Params("id")
	offerId := c.Params("offer_id")

	var req models.OfferUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	offer, err := h.partnerService.UpdateOffer(id, offerId, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, offer)
}

func (h *PartnerHandler) GetPartnerAnalytics(c *fiber.Ctx) error {
	id := c.Params("id")

	analytics, err := h.analyticsService.PartnerAnalytics(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, analytics)
}
