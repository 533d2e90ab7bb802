package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/getlayar/perks-core/internal/app/errors"
	"github.com/getlayar/perks-core/internal/app/models"
)

// AnalyticsService serves read-only rollups over redemption records. It runs
// outside the redemption workflow's transaction and never mutates anything.
type AnalyticsService struct {
	db             *gorm.DB
	partnerService *PartnerService
}

func NewAnalyticsService(db *gorm.DB, partnerService *PartnerService) *AnalyticsService {
	return &AnalyticsService{
		db:             db,
		partnerService: partnerService,
	}
}

// PartnerAnalytics groups a partner's redemptions by derived status with
// points totals. Stored ACTIVE rows past expiry are counted as EXPIRED.
func (s *AnalyticsService) PartnerAnalytics(partnerId string) (*models.PartnerAnalytics, error) {
	partner, err := s.partnerService.GetPartner(partnerId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var rows []models.StatusCount
	err = s.db.Model(&models.Redemption{}).
		Select(`CASE WHEN status = ? AND expires_at <= ? THEN ? ELSE status END AS status,
			COUNT(*) AS count, COALESCE(SUM(points_used), 0) AS points_used`,
			models.RedemptionStatusActive, now, models.RedemptionStatusExpired).
		Where("partner_id = ?", partner.ID).
		Group("1").
		Order("1").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to aggregate redemptions")
	}

	return models.BuildPartnerAnalytics(partner.ID.String(), partner.Name, rows), nil
}
