package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/getlayar/perks-core/internal/app/errors"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/app/pkg"
	"github.com/getlayar/perks-core/internal/infrastructures"
	"github.com/getlayar/perks-core/internal/metrics"
)

// Error codes for client error handling
const (
	ErrCodeInsufficientPoints   = "INSUFFICIENT_POINTS"
	ErrCodePartnerInactive      = "PARTNER_INACTIVE"
	ErrCodeOfferInactive        = "OFFER_INACTIVE"
	ErrCodeOfferExpired         = "OFFER_EXPIRED"
	ErrCodeOfferExhausted       = "OFFER_EXHAUSTED"
	ErrCodeAlreadyRedeemed      = "ALREADY_REDEEMED"
	ErrCodeCodeGenerationFailed = "CODE_GENERATION_FAILED"
	ErrCodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
	ErrCodeRedemptionNotActive  = "REDEMPTION_NOT_ACTIVE"
)

const (
	// Attempts at minting a unique issued code before giving up.
	maxCodeAttempts = 5
	// Internal retries when the workflow loses a race on the atomic update.
	// Eligibility failures are terminal and never retried.
	maxConflictRetries = 2
)

type RedemptionService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	accountService *AccountService
}

func NewRedemptionService(db *gorm.DB, validator *infrastructures.Validator, accountService *AccountService) *RedemptionService {
	return &RedemptionService{
		db:             db,
		validator:      validator,
		accountService: accountService,
	}
}

// Redeem exchanges points for a partner discount code. The whole exchange
// runs in one database transaction: the account, partner and offer rows are
// locked in that fixed order, eligibility is re-checked against the locked
// rows, and the debit and cap increment are conditional writes. Two
// concurrent redemptions by one user, or past an offer cap, serialize on the
// row locks and the loser gets a typed eligibility error with no mutation.
func (s *RedemptionService) Redeem(accountId, partnerId, offerId string) (*models.RedeemResult, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.RecordRedeemDuration(outcome, time.Since(start).Seconds())
	}()

	accountUUID, err := uuid.Parse(accountId)
	if err != nil {
		outcome = "rejected"
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}
	partnerUUID, err := uuid.Parse(partnerId)
	if err != nil {
		outcome = "rejected"
		return nil, errors.NewBadRequestError("Invalid partner ID format")
	}
	offerUUID, err := uuid.Parse(offerId)
	if err != nil {
		outcome = "rejected"
		return nil, errors.NewBadRequestError("Invalid offer ID format")
	}

	var result *models.RedeemResult
	for attempt := 0; ; attempt++ {
		result, err = s.redeemOnce(accountUUID, partnerUUID, offerUUID)
		if err == nil {
			break
		}
		if appErr, ok := err.(*errors.AppError); ok && appErr.StatusCode == 409 && attempt < maxConflictRetries {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"account_id": accountUUID,
			"partner_id": partnerUUID,
			"offer_id":   offerUUID,
		}).Warnf("redeem failed: %v", err)
		if appErr, ok := err.(*errors.AppError); ok && appErr.StatusCode < 500 {
			outcome = "rejected"
		}
		return nil, err
	}

	outcome = "success"
	logrus.WithFields(logrus.Fields{
		"account_id":    accountUUID,
		"partner_id":    partnerUUID,
		"offer_id":      offerUUID,
		"redemption_id": result.Redemption.ID,
		"points_used":   result.Redemption.PointsUsed,
	}).Info("redemption issued")

	return result, nil
}

func (s *RedemptionService) redeemOnce(accountUUID, partnerUUID, offerUUID uuid.UUID) (*models.RedeemResult, error) {
	var redemption *models.Redemption
	var newBalance int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Lock order is fixed: account, then partner, then offer.
		var account models.Account
		if err := tx.Set("gorm:query_option", "FOR UPDATE").Where("connect_id = ?", accountUUID).First(&account).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Account not found")
			}
			return errors.NewInternalServerError(err, "Failed to get account")
		}

		var partner models.Partner
		if err := tx.Set("gorm:query_option", "FOR UPDATE").Where("id = ?", partnerUUID).First(&partner).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Partner not found")
			}
			return errors.NewInternalServerError(err, "Failed to get partner")
		}

		var offer models.Offer
		if err := tx.Set("gorm:query_option", "FOR UPDATE").Where("id = ? AND partner_id = ?", offerUUID, partnerUUID).First(&offer).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Offer not found")
			}
			return errors.NewInternalServerError(err, "Failed to get offer")
		}

		// Eligibility is decided here, against the locked rows, not against
		// whatever the client read earlier.
		if err := EvaluateEligibility(&partner, &offer, account.Points, now); err != nil {
			return err
		}

		if offer.UsageType == models.OfferUsageSingle {
			var prior int64
			err := tx.Model(&models.Redemption{}).
				Where("offer_id = ? AND account_id = ? AND status <> ?", offer.ID, account.ConnectID, models.RedemptionStatusCancelled).
				Count(&prior).Error
			if err != nil {
				return errors.NewInternalServerError(err, "Failed to check prior redemptions")
			}
			if prior > 0 {
				return errors.NewBadRequestError("Offer already redeemed by this account [" + ErrCodeAlreadyRedeemed + "]")
			}
		}

		code, err := s.issueCode(tx, offer.DiscountCode, now)
		if err != nil {
			return err
		}

		// Cap increment is a compare-and-set: it only lands while the
		// counter is still under the cap, even outside the row lock.
		capQuery := tx.Model(&models.Offer{}).Where("id = ?", offer.ID)
		if offer.MaxRedemptions != nil {
			capQuery = capQuery.Where("current_redemptions < ?", *offer.MaxRedemptions)
		}
		capResult := capQuery.UpdateColumn("current_redemptions", gorm.Expr("current_redemptions + 1"))
		if capResult.Error != nil {
			return errors.NewInternalServerError(capResult.Error, "Failed to update offer redemption count")
		}
		if capResult.RowsAffected == 0 {
			return errors.NewBadRequestError("Offer has reached its redemption limit [" + ErrCodeOfferExhausted + "]")
		}

		if err := tx.Model(&models.Partner{}).Where("id = ?", partner.ID).
			UpdateColumn("total_redemptions", gorm.Expr("total_redemptions + 1")).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update partner redemption count")
		}

		redemptionID := uuid.New()
		entry, err := s.accountService.ApplyDelta(tx, account.ConnectID, -offer.PointTier, models.PointsReasonRedemption, &redemptionID)
		if err != nil {
			return err
		}

		redemption = &models.Redemption{
			ID:                 redemptionID,
			AccountID:          account.ConnectID,
			PartnerID:          partner.ID,
			OfferID:            offer.ID,
			PointsUsed:         offer.PointTier,
			DiscountCode:       code,
			OfferTitle:         offer.Title,
			OfferDescription:   offer.Description,
			PartnerName:        partner.Name,
			PartnerWebsite:     partner.Website,
			Status:             models.RedemptionStatusActive,
			ExpiresAt:          offer.ExpiresAt,
			PointsBalanceAfter: entry.BalanceAfter,
		}

		if err := tx.Create(redemption).Error; err != nil {
			// The unique index on discount_code backstops the in-transaction
			// uniqueness probe; a violation means another request minted the
			// same code after our check.
			return errors.NewConflictError("Redemption lost a concurrent race, retry [" + ErrCodeConcurrencyConflict + "]")
		}

		newBalance = entry.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.RedeemResult{
		Redemption:       redemption,
		NewPointsBalance: newBalance,
	}, nil
}

// issueCode mints the code handed to the user: partner template plus a fresh
// unique suffix, re-generated on collision a bounded number of times.
func (s *RedemptionService) issueCode(tx *gorm.DB, template string, now time.Time) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := pkg.IssuedCode(template, now)

		var taken int64
		if err := tx.Model(&models.Redemption{}).Where("discount_code = ?", code).Count(&taken).Error; err != nil {
			return "", errors.NewInternalServerError(err, "Failed to check code uniqueness")
		}
		if taken == 0 {
			return code, nil
		}
	}
	return "", errors.NewInternalServerError(
		fmt.Errorf("exhausted %d attempts", maxCodeAttempts),
		"Failed to generate a unique discount code ["+ErrCodeCodeGenerationFailed+"]",
	)
}

// FindValidRedemption is the read partners use to accept a code. The match is
// case-insensitive and expiry is checked against the clock, never trusted
// from the stored status. No side effects.
func (s *RedemptionService) FindValidRedemption(code string) (*models.Redemption, error) {
	normalized := pkg.NormalizeCode(code)

	var redemption models.Redemption
	err := s.db.Where("discount_code = ? AND status = ?", normalized, models.RedemptionStatusActive).First(&redemption).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			metrics.RecordCodeValidation("invalid")
			return nil, errors.NewNotFoundError("Code not found or no longer valid")
		}
		return nil, errors.NewInternalServerError(err, "Failed to look up code")
	}

	if !redemption.Usable(time.Now()) {
		metrics.RecordCodeValidation("invalid")
		return nil, errors.NewNotFoundError("Code not found or no longer valid")
	}

	metrics.RecordCodeValidation("valid")
	return &redemption, nil
}

// MarkAsUsed flips one redemption from ACTIVE to USED. The status write is
// conditional on the row still being ACTIVE, so a code can never be honored
// twice; any terminal state fails with a typed error and no side effects.
func (s *RedemptionService) MarkAsUsed(code string, req *models.MarkUsedRequest) (*models.Redemption, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	normalized := pkg.NormalizeCode(code)
	var redemption models.Redemption

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("discount_code = ?", normalized).First(&redemption).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Code not found")
			}
			return errors.NewInternalServerError(err, "Failed to look up code")
		}

		now := time.Now()
		if redemption.EffectiveStatus(now) != models.RedemptionStatusActive {
			return errors.NewNotFoundError("Code is no longer active [" + ErrCodeRedemptionNotActive + "]")
		}

		result := tx.Model(&models.Redemption{}).
			Where("id = ? AND status = ?", redemption.ID, models.RedemptionStatusActive).
			Updates(map[string]interface{}{
				"status":         models.RedemptionStatusUsed,
				"used_at":        now,
				"marked_used_by": req.MarkedBy,
			})
		if result.Error != nil {
			return errors.NewInternalServerError(result.Error, "Failed to mark code as used")
		}
		if result.RowsAffected == 0 {
			return errors.NewConflictError("Code was marked concurrently [" + ErrCodeConcurrencyConflict + "]")
		}

		redemption.Status = models.RedemptionStatusUsed
		redemption.UsedAt = &now
		redemption.MarkedUsedBy = &req.MarkedBy
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCodeMarked()
	logrus.WithFields(logrus.Fields{
		"redemption_id": redemption.ID,
		"partner_id":    redemption.PartnerID,
	}).Info("redemption marked used")

	return &redemption, nil
}

// CancelRedemption is the admin remediation path: ACTIVE becomes CANCELLED
// and the debited points flow back through the ledger.
func (s *RedemptionService) CancelRedemption(redemptionId string) (*models.Redemption, error) {
	redemptionUUID, err := uuid.Parse(redemptionId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid redemption ID format")
	}

	var redemption models.Redemption
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", redemptionUUID).First(&redemption).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Redemption not found")
			}
			return errors.NewInternalServerError(err, "Failed to get redemption")
		}

		if redemption.EffectiveStatus(time.Now()) != models.RedemptionStatusActive {
			return errors.NewBadRequestError("Only active redemptions can be cancelled [" + ErrCodeRedemptionNotActive + "]")
		}

		result := tx.Model(&models.Redemption{}).
			Where("id = ? AND status = ?", redemption.ID, models.RedemptionStatusActive).
			UpdateColumn("status", models.RedemptionStatusCancelled)
		if result.Error != nil {
			return errors.NewInternalServerError(result.Error, "Failed to cancel redemption")
		}
		if result.RowsAffected == 0 {
			return errors.NewConflictError("Redemption changed concurrently [" + ErrCodeConcurrencyConflict + "]")
		}

		if _, err := s.accountService.ApplyDelta(tx, redemption.AccountID, redemption.PointsUsed, models.PointsReasonRedemptionRefund, &redemption.ID); err != nil {
			return err
		}

		redemption.Status = models.RedemptionStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &redemption, nil
}

// GetRedemptionsByAccount lists a user's redemption history, newest first.
// Statuses in the result are derived: a stored ACTIVE past expiry reads as
// EXPIRED, and the optional filter matches the derived status.
func (s *RedemptionService) GetRedemptionsByAccount(accountId string, status string, limit, offset int) ([]models.Redemption, error) {
	accountUUID, err := uuid.Parse(accountId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	if limit <= 0 {
		limit = 20
	}

	now := time.Now()
	query := s.db.Where("account_id = ?", accountUUID).Order("redeemed_at DESC").Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}

	switch models.RedemptionStatus(status) {
	case "":
	case models.RedemptionStatusActive:
		query = query.Where("status = ? AND expires_at > ?", models.RedemptionStatusActive, now)
	case models.RedemptionStatusExpired:
		query = query.Where("status = ? OR (status = ? AND expires_at <= ?)",
			models.RedemptionStatusExpired, models.RedemptionStatusActive, now)
	case models.RedemptionStatusUsed, models.RedemptionStatusCancelled:
		query = query.Where("status = ?", status)
	default:
		return nil, errors.NewBadRequestError("Invalid status filter")
	}

	var redemptions []models.Redemption
	if err := query.Find(&redemptions).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get redemptions")
	}

	for i := range redemptions {
		redemptions[i].Status = redemptions[i].EffectiveStatus(now)
	}

	return redemptions, nil
}
