package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getlayar/perks-core/internal/app/errors"
	"github.com/getlayar/perks-core/internal/app/models"
)

func redeemablePartner() *models.Partner {
	return &models.Partner{Name: "Acme", IsActive: true}
}

func redeemableOffer(now time.Time) *models.Offer {
	return &models.Offer{
		PointTier: 2000,
		IsActive:  true,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func assertEligibilityCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected AppError, got %T", err)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "["+code+"]")
}

func TestEvaluateEligibilityOK(t *testing.T) {
	now := time.Now()
	err := EvaluateEligibility(redeemablePartner(), redeemableOffer(now), 5000, now)
	assert.NoError(t, err)
}

func TestEvaluateEligibilityExactBalance(t *testing.T) {
	now := time.Now()
	err := EvaluateEligibility(redeemablePartner(), redeemableOffer(now), 2000, now)
	assert.NoError(t, err)
}

func TestEvaluateEligibilityInsufficientPoints(t *testing.T) {
	now := time.Now()
	err := EvaluateEligibility(redeemablePartner(), redeemableOffer(now), 1999, now)
	assertEligibilityCode(t, err, ErrCodeInsufficientPoints)
}

func TestEvaluateEligibilityInactivePartnerWinsOverAll(t *testing.T) {
	// An unapproved partner blocks redemption even when the offer itself is
	// active, unexpired and affordable.
	now := time.Now()
	partner := redeemablePartner()
	partner.IsActive = false

	err := EvaluateEligibility(partner, redeemableOffer(now), 10000, now)
	assertEligibilityCode(t, err, ErrCodePartnerInactive)
}

func TestEvaluateEligibilityInactiveOffer(t *testing.T) {
	now := time.Now()
	offer := redeemableOffer(now)
	offer.IsActive = false

	err := EvaluateEligibility(redeemablePartner(), offer, 10000, now)
	assertEligibilityCode(t, err, ErrCodeOfferInactive)
}

func TestEvaluateEligibilityExpiredOffer(t *testing.T) {
	now := time.Now()
	offer := redeemableOffer(now)
	offer.ExpiresAt = now.Add(-time.Second)

	err := EvaluateEligibility(redeemablePartner(), offer, 10000, now)
	assertEligibilityCode(t, err, ErrCodeOfferExpired)
}

func TestEvaluateEligibilityExhaustedOffer(t *testing.T) {
	now := time.Now()
	limit := int64(1)
	offer := redeemableOffer(now)
	offer.MaxRedemptions = &limit
	offer.CurrentRedemptions = 1

	err := EvaluateEligibility(redeemablePartner(), offer, 10000, now)
	assertEligibilityCode(t, err, ErrCodeOfferExhausted)
}
