package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedemptionEffectiveStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		status    RedemptionStatus
		expiresAt time.Time
		want      RedemptionStatus
	}{
		{"active before expiry", RedemptionStatusActive, now.Add(time.Hour), RedemptionStatusActive},
		{"stored active past expiry reads expired", RedemptionStatusActive, now.Add(-time.Hour), RedemptionStatusExpired},
		{"active at exact expiry is expired", RedemptionStatusActive, now, RedemptionStatusExpired},
		{"used stays used even past expiry", RedemptionStatusUsed, now.Add(-time.Hour), RedemptionStatusUsed},
		{"cancelled stays cancelled", RedemptionStatusCancelled, now.Add(time.Hour), RedemptionStatusCancelled},
		{"expired stays expired", RedemptionStatusExpired, now.Add(time.Hour), RedemptionStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Redemption{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, r.EffectiveStatus(now))
		})
	}
}

func TestRedemptionUsable(t *testing.T) {
	now := time.Now()

	usable := Redemption{Status: RedemptionStatusActive, ExpiresAt: now.Add(time.Minute)}
	assert.True(t, usable.Usable(now))

	expired := Redemption{Status: RedemptionStatusActive, ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.Usable(now))

	used := Redemption{Status: RedemptionStatusUsed, ExpiresAt: now.Add(time.Minute)}
	assert.False(t, used.Usable(now))
}

func TestRedemptionSummaryRedaction(t *testing.T) {
	now := time.Now()
	r := Redemption{
		DiscountCode:       "SAVE20-ABCD1234",
		OfferTitle:         "20% off",
		PartnerName:        "Acme",
		Status:             RedemptionStatusActive,
		ExpiresAt:          now.Add(-time.Hour),
		PointsBalanceAfter: 3000,
	}

	summary := r.Summary(now)
	assert.Equal(t, "SAVE20-ABCD1234", summary.DiscountCode)
	assert.Equal(t, "Acme", summary.PartnerName)
	// Derived, not stored, status
	assert.Equal(t, RedemptionStatusExpired, summary.Status)
}
