package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestOfferRedeemable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		offer Offer
		want  bool
	}{
		{
			name:  "active unexpired unlimited",
			offer: Offer{IsActive: true, ExpiresAt: now.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "inactive",
			offer: Offer{IsActive: false, ExpiresAt: now.Add(time.Hour)},
			want:  false,
		},
		{
			name:  "expired",
			offer: Offer{IsActive: true, ExpiresAt: now.Add(-time.Minute)},
			want:  false,
		},
		{
			name:  "expiry boundary is exclusive",
			offer: Offer{IsActive: true, ExpiresAt: now},
			want:  false,
		},
		{
			name: "under cap",
			offer: Offer{
				IsActive:           true,
				ExpiresAt:          now.Add(time.Hour),
				MaxRedemptions:     int64Ptr(5),
				CurrentRedemptions: 4,
			},
			want: true,
		},
		{
			name: "at cap",
			offer: Offer{
				IsActive:           true,
				ExpiresAt:          now.Add(time.Hour),
				MaxRedemptions:     int64Ptr(5),
				CurrentRedemptions: 5,
			},
			want: false,
		},
		{
			name: "nil cap never exhausts",
			offer: Offer{
				IsActive:           true,
				ExpiresAt:          now.Add(time.Hour),
				CurrentRedemptions: 1000000,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.offer.Redeemable(now))
		})
	}
}

func TestPartnerActiveOffers(t *testing.T) {
	now := time.Now()

	partner := Partner{
		IsActive: true,
		Offers: []Offer{
			{Title: "live", IsActive: true, ExpiresAt: now.Add(time.Hour)},
			{Title: "expired", IsActive: true, ExpiresAt: now.Add(-time.Hour)},
			{Title: "disabled", IsActive: false, ExpiresAt: now.Add(time.Hour)},
			{Title: "exhausted", IsActive: true, ExpiresAt: now.Add(time.Hour), MaxRedemptions: int64Ptr(1), CurrentRedemptions: 1},
		},
	}

	active := partner.ActiveOffers(now)
	assert.Len(t, active, 1)
	assert.Equal(t, "live", active[0].Title)
}

func TestPartnerActiveOffersEmpty(t *testing.T) {
	partner := Partner{IsActive: true}
	active := partner.ActiveOffers(time.Now())
	assert.NotNil(t, active)
	assert.Empty(t, active)
}

func TestValidPointTier(t *testing.T) {
	for _, tier := range PointTiers {
		assert.True(t, ValidPointTier(tier))
	}
	assert.False(t, ValidPointTier(0))
	assert.False(t, ValidPointTier(1999))
	assert.False(t, ValidPointTier(3000))
	assert.False(t, ValidPointTier(-2000))
}
