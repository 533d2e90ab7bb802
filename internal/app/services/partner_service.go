package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/getlayar/perks-core/internal/app/errors"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/infrastructures"
)

type PartnerService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewPartnerService(db *gorm.DB, validator *infrastructures.Validator) *PartnerService {
	return &PartnerService{
		db:        db,
		validator: validator,
	}
}

// EvaluateEligibility is the canRedeem predicate: partner gate, offer state,
// expiry, cap and balance, in that order. It is evaluated on reads for
// display and re-evaluated inside the redemption transaction against freshly
// locked rows, so a stale read can never authorize a debit.
func EvaluateEligibility(partner *models.Partner, offer *models.Offer, points int64, now time.Time) error {
	if !partner.IsActive {
		return errors.NewBadRequestError("Partner is not active [" + ErrCodePartnerInactive + "]")
	}
	if !offer.IsActive {
		return errors.NewBadRequestError("Offer is not active [" + ErrCodeOfferInactive + "]")
	}
	if offer.Expired(now) {
		return errors.NewBadRequestError("Offer has expired [" + ErrCodeOfferExpired + "]")
	}
	if offer.Exhausted() {
		return errors.NewBadRequestError("Offer has reached its redemption limit [" + ErrCodeOfferExhausted + "]")
	}
	if points < offer.PointTier {
		return errors.NewBadRequestError("Insufficient points balance [" + ErrCodeInsufficientPoints + "]")
	}
	return nil
}

// ListActivePartners returns admin-approved partners with the derived
// active-offer view. The view depends on the clock and usage counters, so it
// is computed on every call and never stored.
func (s *PartnerService) ListActivePartners() ([]models.PartnerView, error) {
	var partners []models.Partner
	err := s.db.Preload("Offers").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&partners).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list partners")
	}

	now := time.Now()
	views := make([]models.PartnerView, 0, len(partners))
	for i := range partners {
		partner := &partners[i]
		views = append(views, models.PartnerView{
			ID:               partner.ID,
			Name:             partner.Name,
			Slug:             partner.Slug,
			Description:      partner.Description,
			Website:          partner.Website,
			LogoURL:          partner.LogoURL,
			Category:         partner.Category,
			TotalRedemptions: partner.TotalRedemptions,
			Offers:           partner.ActiveOffers(now),
		})
	}

	return views, nil
}

func (s *PartnerService) ListPartners(limit, offset int) ([]models.Partner, error) {
	if limit <= 0 {
		limit = 20
	}

	var partners []models.Partner
	query := s.db.Preload("Offers").Order("created_at DESC").Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&partners).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list partners")
	}

	return partners, nil
}

func (s *PartnerService) GetPartner(partnerId string) (*models.Partner, error) {
	partnerUUID, err := uuid.Parse(partnerId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid partner ID format")
	}

	var partner models.Partner
	err = s.db.Preload("Offers").Where("id = ?", partnerUUID).First(&partner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Partner not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get partner")
	}

	return &partner, nil
}

func (s *PartnerService) CreatePartner(req *models.PartnerCreateRequest) (*models.Partner, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var existingPartner models.Partner
	err := s.db.Where("slug = ?", req.Slug).First(&existingPartner).Error
	if err == nil {
		return nil, errors.NewBadRequestError("Partner slug already exists")
	}

	partner := &models.Partner{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
		Category:    req.Category,
	}
	if req.IsActive != nil {
		partner.IsActive = *req.IsActive
	}

	if err := s.db.Create(partner).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create partner")
	}

	return partner, nil
}

func (s *PartnerService) UpdatePartner(partnerId string, req *models.PartnerUpdateRequest) (*models.Partner, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	partner, err := s.GetPartner(partnerId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.Description != nil {
		partner.Description = req.Description
	}
	if req.Website != nil {
		partner.Website = req.Website
	}
	if req.LogoURL != nil {
		partner.LogoURL = req.LogoURL
	}
	if req.Category != nil {
		partner.Category = *req.Category
	}
	if req.IsActive != nil {
		partner.IsActive = *req.IsActive
	}

	if err := s.db.Save(partner).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update partner")
	}

	return partner, nil
}

// DeletePartner soft-deletes a partner and its offers. It refuses while any
// issued code is still honorable, so a partner cannot disappear from under
// outstanding redemptions; historical records keep their snapshots either way.
func (s *PartnerService) DeletePartner(partnerId string) error {
	partner, err := s.GetPartner(partnerId)
	if err != nil {
		return err
	}

	var outstanding int64
	err = s.db.Model(&models.Redemption{}).
		Where("partner_id = ? AND status = ? AND expires_at > ?", partner.ID, models.RedemptionStatusActive, time.Now()).
		Count(&outstanding).Error
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to check outstanding redemptions")
	}
	if outstanding > 0 {
		return errors.NewConflictError("Partner has outstanding active redemptions")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("partner_id = ?", partner.ID).Delete(&models.Offer{}).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to delete partner offers")
		}
		if err := tx.Delete(partner).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to delete partner")
		}
		return nil
	})
}

func (s *PartnerService) AddOffer(partnerId string, req *models.OfferCreateRequest) (*models.Offer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if !models.ValidPointTier(req.PointTier) {
		return nil, errors.NewBadRequestError("Point tier must be one of the fixed tiers")
	}

	partner, err := s.GetPartner(partnerId)
	if err != nil {
		return nil, err
	}

	offer := &models.Offer{
		PartnerID:       partner.ID,
		PointTier:       req.PointTier,
		Title:           req.Title,
		Description:     req.Description,
		Terms:           req.Terms,
		DiscountCode:    req.DiscountCode,
		DiscountPercent: req.DiscountPercent,
		UsageType:       req.UsageType,
		MaxRedemptions:  req.MaxRedemptions,
		ExpiresAt:       req.ExpiresAt,
		IsActive:        true,
	}

	if err := s.db.Create(offer).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create offer")
	}

	return offer, nil
}

func (s *PartnerService) GetOffer(partnerId, offerId string) (*models.Offer, error) {
	partnerUUID, err := uuid.Parse(partnerId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid partner ID format")
	}
	offerUUID, err := uuid.Parse(offerId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid offer ID format")
	}

	var offer models.Offer
	err = s.db.Where("id = ? AND partner_id = ?", offerUUID, partnerUUID).First(&offer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Offer not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get offer")
	}

	return &offer, nil
}

// UpdateOffer edits catalog fields. Existing redemptions are untouched: they
// carry snapshots of the tier cost and display text from redemption time.
func (s *PartnerService) UpdateOffer(partnerId, offerId string, req *models.OfferUpdateRequest) (*models.Offer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.PointTier != nil && !models.ValidPointTier(*req.PointTier) {
		return nil, errors.NewBadRequestError("Point tier must be one of the fixed tiers")
	}

	offer, err := s.GetOffer(partnerId, offerId)
	if err != nil {
		return nil, err
	}

	if req.PointTier != nil {
		offer.PointTier = *req.PointTier
	}
	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Description != nil {
		offer.Description = req.Description
	}
	if req.Terms != nil {
		offer.Terms = req.Terms
	}
	if req.DiscountCode != nil {
		offer.DiscountCode = *req.DiscountCode
	}
	if req.DiscountPercent != nil {
		offer.DiscountPercent = req.DiscountPercent
	}
	if req.MaxRedemptions != nil {
		offer.MaxRedemptions = req.MaxRedemptions
	}
	if req.ExpiresAt != nil {
		offer.ExpiresAt = *req.ExpiresAt
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	if err := s.db.Save(offer).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update offer")
	}

	return offer, nil
}
